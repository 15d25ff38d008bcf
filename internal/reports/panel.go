package reports

import "context"

// Column renders one table column of a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Table is a rendered result set.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// Searcher is the type-erased view of a panel used by handlers.
type Searcher interface {
	Category() Category
	Fields() []Field
	SourceName() string
	Search(ctx context.Context, c Criteria) (Table, error)
}

// Panel is a report search parameterised by row type: the filter fields, where
// rows come from, which rows match, and how they are shown.
type Panel[T any] struct {
	category Category
	fields   []Field
	columns  []Column[T]
	source   Source[T]
	match    func(T, Criteria) bool
}

// NewPanel builds a panel. A nil match keeps every row.
func NewPanel[T any](category Category, fields []Field, columns []Column[T], source Source[T], match func(T, Criteria) bool) *Panel[T] {
	if match == nil {
		match = func(T, Criteria) bool { return true }
	}
	return &Panel[T]{category: category, fields: fields, columns: columns, source: source, match: match}
}

func (p *Panel[T]) Category() Category { return p.category }

// Fields returns a copy of the field descriptors.
func (p *Panel[T]) Fields() []Field {
	out := make([]Field, len(p.fields))
	copy(out, p.fields)
	return out
}

func (p *Panel[T]) SourceName() string { return p.source.Name() }

// Rows fetches from the source and keeps the rows matching c.
func (p *Panel[T]) Rows(ctx context.Context, c Criteria) ([]T, error) {
	rows, err := p.source.Rows(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if p.match(row, c) {
			out = append(out, row)
		}
	}
	return out, nil
}

// Search returns the matching rows rendered through the panel columns.
func (p *Panel[T]) Search(ctx context.Context, c Criteria) (Table, error) {
	rows, err := p.Rows(ctx, c)
	if err != nil {
		return Table{}, err
	}
	table := Table{Headers: make([]string, len(p.columns)), Rows: make([][]string, 0, len(rows))}
	for i, col := range p.columns {
		table.Headers[i] = col.Header
	}
	for _, row := range rows {
		cells := make([]string, len(p.columns))
		for i, col := range p.columns {
			cells[i] = col.Value(row)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}
