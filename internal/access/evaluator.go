package access

import "sort"

// SessionSource exposes the grants of the currently authenticated user.
//
// Implementations return nil when no user is authenticated. The evaluator
// calls the source on every query so answers always reflect the session at
// call time; it never caches a result across a session change.
type SessionSource interface {
	CurrentGrants() []Grant
}

// Evaluator answers capability queries against the current session.
type Evaluator struct {
	source SessionSource
}

// NewEvaluator creates an evaluator bound to a session source.
func NewEvaluator(source SessionSource) *Evaluator {
	return &Evaluator{source: source}
}

// HasAccess reports whether the current user may act on the given module.
//
// With no operation, it is true when the user holds any grant for the module.
// With an operation, the grant must match both module and operation. Only the
// first operation argument is considered. Unauthenticated sessions always
// answer false.
func (e *Evaluator) HasAccess(module string, operation ...Operation) bool {
	grants := e.source.CurrentGrants()
	if len(grants) == 0 {
		return false
	}

	for _, g := range grants {
		if g.Module != module {
			continue
		}
		if len(operation) == 0 {
			return true
		}
		if g.Operation.matches(operation[0]) {
			return true
		}
	}
	return false
}

// CanCreate reports whether the current user may create entries in the module.
func (e *Evaluator) CanCreate(module string) bool {
	return e.HasAccess(module, OperationCreate)
}

// CanRead reports whether the current user may read entries in the module.
func (e *Evaluator) CanRead(module string) bool {
	return e.HasAccess(module, OperationRead)
}

// CanUpdate reports whether the current user may update entries in the module.
func (e *Evaluator) CanUpdate(module string) bool {
	return e.HasAccess(module, OperationUpdate)
}

// CanDelete reports whether the current user may delete entries in the module.
func (e *Evaluator) CanDelete(module string) bool {
	return e.HasAccess(module, OperationDelete)
}

// AccessibleModules returns the distinct module keys appearing anywhere in the
// current user's grants, sorted for stable output. Empty when unauthenticated.
func (e *Evaluator) AccessibleModules() []string {
	grants := e.source.CurrentGrants()
	if len(grants) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(grants))
	modules := make([]string, 0, len(grants))
	for _, g := range grants {
		if _, ok := seen[g.Module]; ok {
			continue
		}
		seen[g.Module] = struct{}{}
		modules = append(modules, g.Module)
	}
	sort.Strings(modules)
	return modules
}

// HasPermissionName checks access by bare permission name.
//
// Deprecated: retained for call sites that predate module+operation grants.
// It always denies; use HasAccess instead.
func (e *Evaluator) HasPermissionName(name string) bool {
	return false
}

// HasRole checks access by role name.
//
// Deprecated: retained for call sites that predate module+operation grants.
// It always denies; use HasAccess instead.
func (e *Evaluator) HasRole(role string) bool {
	return false
}
