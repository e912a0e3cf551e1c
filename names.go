package webnativebridge

// The bridge keys every lookup (registry entries, channel routing, event
// names, generated glue) on small string-backed identifier types. Two
// identifiers with equal underlying strings are interchangeable everywhere.
// Construction never rejects input; callers own sensible naming.

// ModuleName identifies a capability module. It doubles as the name of the
// message channel the module's calls arrive on.
type ModuleName string

func (m ModuleName) String() string { return string(m) }

// Qualify returns the page-visible event type for an event of this module,
// e.g. "view.keyboardShow".
func (m ModuleName) Qualify(e EventName) string {
	return string(m) + "." + string(e)
}

// FunctionName identifies one function within a module.
type FunctionName string

func (f FunctionName) String() string { return string(f) }

// ArgumentName identifies one keyword argument of a call.
type ArgumentName string

func (a ArgumentName) String() string { return string(a) }

// EventName identifies one event publisher within a module.
type EventName string

func (e EventName) String() string { return string(e) }
