package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = UserRecord{Username: "alice", Email: "a@b.com", Phone: "12345678", Password: "Secret1!"}

func TestUserRecord_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(alice)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","email":"a@b.com","phone":"12345678","password":"Secret1!"}`, string(b))
}

func TestUserRecord_Identifies(t *testing.T) {
	assert.True(t, alice.Identifies("alice"))
	assert.True(t, alice.Identifies("a@b.com"))
	assert.True(t, alice.Identifies("12345678"))
	assert.False(t, alice.Identifies("Alice"))
	assert.False(t, alice.Identifies(" alice"))
	assert.False(t, alice.Identifies("Secret1!"))
}

func TestUserRecord_ConflictsWith(t *testing.T) {
	tests := []struct {
		name  string
		other UserRecord
		want  bool
	}{
		{"same username", UserRecord{Username: "alice", Email: "x@y.z", Phone: "1"}, true},
		{"same email", UserRecord{Username: "bob", Email: "a@b.com", Phone: "1"}, true},
		{"same phone", UserRecord{Username: "bob", Email: "x@y.z", Phone: "12345678"}, true},
		{"all different", UserRecord{Username: "bob", Email: "x@y.z", Phone: "1"}, false},
		{"password alone does not conflict", UserRecord{Username: "bob", Email: "x@y.z", Phone: "1", Password: "Secret1!"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, alice.ConflictsWith(tt.other))
		})
	}
}

func TestRegisterForm_RecordKeepsRawValues(t *testing.T) {
	f := RegisterForm{Username: " alice ", Email: "a@b.com", Phone: "1", Password: "p"}
	assert.Equal(t, UserRecord{Username: " alice ", Email: "a@b.com", Phone: "1", Password: "p"}, f.Record())
}

func TestFieldErrors(t *testing.T) {
	e := FieldErrors{}
	assert.True(t, e.Empty())

	e.Set(FieldPassword, "p")
	e.Set(FieldUsername, "first")
	e.Set(FieldUsername, "second")
	e.Set(FieldEmail, "e")

	assert.False(t, e.Empty())
	assert.True(t, e.Has(FieldUsername))
	assert.False(t, e.Has(FieldPhone))
	assert.Equal(t, "second", e[FieldUsername])
	assert.Equal(t, []Field{FieldUsername, FieldEmail, FieldPassword}, e.Fields())
}
