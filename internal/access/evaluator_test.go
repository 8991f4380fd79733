package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// grantSource is a SessionSource backed by a mutable slice, so tests can flip
// the session under the evaluator.
type grantSource struct {
	grants []Grant
}

func (s *grantSource) CurrentGrants() []Grant {
	return s.grants
}

func TestEvaluator_HasAccess(t *testing.T) {
	source := &grantSource{grants: []Grant{
		{Module: "ACCESS_GROUP", Operation: OperationCreate},
		{Module: "USER", Operation: OperationRead},
		{Module: "USER", Operation: OperationUpdate},
	}}
	e := NewEvaluator(source)

	tests := []struct {
		name      string
		module    string
		operation []Operation
		want      bool
	}{
		{
			name:      "module and operation match",
			module:    "ACCESS_GROUP",
			operation: []Operation{OperationCreate},
			want:      true,
		},
		{
			name:   "module only, any operation",
			module: "ACCESS_GROUP",
			want:   true,
		},
		{
			name:      "operation not granted",
			module:    "ACCESS_GROUP",
			operation: []Operation{OperationDelete},
			want:      false,
		},
		{
			name:   "unknown module",
			module: "OTHER_MODULE",
			want:   false,
		},
		{
			name:      "select spelling satisfies read grant",
			module:    "USER",
			operation: []Operation{"SELECT"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.HasAccess(tt.module, tt.operation...))
		})
	}
}

func TestEvaluator_Unauthenticated(t *testing.T) {
	e := NewEvaluator(&grantSource{})

	assert.False(t, e.HasAccess("ACCESS_GROUP"))
	assert.False(t, e.HasAccess("ACCESS_GROUP", OperationRead))
	assert.False(t, e.CanCreate("ACCESS_GROUP"))
	assert.Empty(t, e.AccessibleModules())
}

func TestEvaluator_ConvenienceForms(t *testing.T) {
	source := &grantSource{grants: []Grant{
		{Module: "MODULE", Operation: OperationCreate},
		{Module: "MODULE", Operation: OperationRead},
		{Module: "MODULE", Operation: OperationUpdate},
		{Module: "MODULE", Operation: OperationDelete},
	}}
	e := NewEvaluator(source)

	assert.True(t, e.CanCreate("MODULE"))
	assert.True(t, e.CanRead("MODULE"))
	assert.True(t, e.CanUpdate("MODULE"))
	assert.True(t, e.CanDelete("MODULE"))

	assert.False(t, e.CanCreate("OTHER"))
}

func TestEvaluator_AccessibleModules(t *testing.T) {
	source := &grantSource{grants: []Grant{
		{Module: "USER", Operation: OperationRead},
		{Module: "ACCESS_GROUP", Operation: OperationCreate},
		{Module: "USER", Operation: OperationUpdate}, // duplicate module
	}}
	e := NewEvaluator(source)

	assert.Equal(t, []string{"ACCESS_GROUP", "USER"}, e.AccessibleModules())
}

func TestEvaluator_ReflectsSessionChange(t *testing.T) {
	source := &grantSource{grants: []Grant{
		{Module: "X", Operation: OperationRead},
	}}
	e := NewEvaluator(source)

	assert.True(t, e.CanRead("X"))

	// Session ends; the very next query must deny.
	source.grants = nil
	assert.False(t, e.CanRead("X"))
	assert.Empty(t, e.AccessibleModules())
}

func TestEvaluator_LegacyQueriesAlwaysDeny(t *testing.T) {
	source := &grantSource{grants: []Grant{
		{Module: "USER", Operation: OperationRead},
	}}
	e := NewEvaluator(source)

	assert.False(t, e.HasPermissionName("USER_READ"))
	assert.False(t, e.HasRole("admin"))
}
