// Package access evaluates what the authenticated user is allowed to do.
//
// The backend expresses authorization as a flat list of grants, each naming a
// module (a functional area such as ACCESS_GROUP or USER) and an operation on
// that module. The evaluator derives capability answers from the grants of the
// current session; it holds no state of its own, so a session change is visible
// on the very next query.
package access

// Operation identifies an action on a module.
//
// The vocabulary is defined by the backend and treated as open: the constants
// below are the canonical CRUD operations, but unknown operation strings still
// participate in exact matching.
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationRead   Operation = "READ"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// operationSelect is the backend's legacy spelling for read access. Grants
// using either spelling satisfy a read check.
const operationSelect Operation = "SELECT"

// Grant is a single unit of authorization held by a user.
type Grant struct {
	Module    string    `json:"module"`
	Operation Operation `json:"operation"`
}

// matches reports whether the grant's operation satisfies the requested one.
func (o Operation) matches(requested Operation) bool {
	if o == requested {
		return true
	}
	// READ and SELECT are interchangeable.
	return (o == OperationRead || o == operationSelect) &&
		(requested == OperationRead || requested == operationSelect)
}
