package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wardenhq/wardenctl/internal/access"
)

func TestOperationArg(t *testing.T) {
	assert.Equal(t, access.OperationCreate, operationArg("create"))
	assert.Equal(t, access.OperationRead, operationArg(" READ "))
	assert.Equal(t, access.Operation("SELECT"), operationArg("select"))
	assert.Equal(t, access.Operation("APPROVE"), operationArg("approve"))
}
