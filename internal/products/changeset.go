package products

// Field names a mutable product column. The constants double as the SQL
// column identifiers, so only enumerated fields can ever reach a statement.
type Field string

const (
	FieldName          Field = "name"
	FieldWeight        Field = "weight"
	FieldExpiryDate    Field = "expiry_date"
	FieldType          Field = "type"
	FieldThresholdDays Field = "threshold_days"
)

type Change struct {
	Field Field
	Value any
}

// ChangeSet is the ordered list of column writes a partial update applies.
// It replaces ad hoc statement concatenation: which columns change is decided
// here, as data, before any SQL is rendered.
type ChangeSet []Change

func (cs *ChangeSet) Set(field Field, value any) {
	*cs = append(*cs, Change{Field: field, Value: value})
}

func (cs ChangeSet) Empty() bool {
	return len(cs) == 0
}
