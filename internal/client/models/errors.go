package models

import "sort"

// Field names a form field that a validation message is attached to.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldPassword Field = "password"

	// FieldLogin carries the single message of the sign-in form.
	FieldLogin Field = "login"
)

// FieldErrors maps a field to its user-visible message. An empty set means
// the submitted form was accepted.
type FieldErrors map[Field]string

// Set records msg for f, replacing any earlier message on the same field.
func (e FieldErrors) Set(f Field, msg string) {
	e[f] = msg
}

// Has reports whether f carries a message.
func (e FieldErrors) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Empty reports whether no field carries a message.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

var fieldOrder = map[Field]int{
	FieldUsername: 0,
	FieldEmail:    1,
	FieldPhone:    2,
	FieldPassword: 3,
	FieldLogin:    4,
}

// Fields returns the fields carrying a message in form order.
func (e FieldErrors) Fields() []Field {
	fields := make([]Field, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		oi, iok := fieldOrder[fields[i]]
		oj, jok := fieldOrder[fields[j]]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return fields[i] < fields[j]
	})
	return fields
}
