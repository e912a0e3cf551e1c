package dispatch

import (
	bridge "github.com/amosavian/WebNativeBridgeKit"
	"github.com/amosavian/WebNativeBridgeKit/errors"
	"github.com/amosavian/WebNativeBridgeKit/value"
)

// functionNameKey is the one mandatory key of every inbound payload.
const functionNameKey = "functionName"

// Call is the runtime representation of one invocation: the module it
// arrived for (derived from the channel identity), the target function, and
// the keyword-argument map.
type Call struct {
	Module   bridge.ModuleName
	Function bridge.FunctionName
	Args     bridge.Args
}

// ParseMessage builds a Call from a raw inbound payload. The functionName
// key is extracted and stripped; every remaining key becomes a keyword
// argument. A missing, blank, or non-string functionName, or an argument
// that cannot be represented as a bridge value, yields a malformed-call
// error, which the core settles as the empty "nothing" reply rather than a
// page-visible failure.
func ParseMessage(module bridge.ModuleName, payload map[string]any) (*Call, error) {
	raw, ok := payload[functionNameKey]
	if !ok {
		return nil, errors.MalformedCall("payload has no functionName")
	}
	name, ok := raw.(string)
	if !ok || name == "" {
		return nil, errors.MalformedCall("functionName is not a non-empty string")
	}

	args := make(bridge.Args, len(payload)-1)
	for key, arg := range payload {
		if key == functionNameKey {
			continue
		}
		v, err := value.FromGo(arg)
		if err != nil {
			return nil, errors.New(errors.PhaseDispatch, errors.KindMalformedCall).
				Path(key).
				Cause(err).
				Detail("argument is not a bridge value").
				Build()
		}
		args[bridge.ArgumentName(key)] = v
	}

	return &Call{
		Module:   module,
		Function: bridge.FunctionName(name),
		Args:     args,
	}, nil
}

// Reply is the ordered (value, error-description) pair settled back across
// the bridge for every call. Exactly one side is populated, except for the
// "nothing" reply where both are absent.
type Reply struct {
	Value *value.Value
	Err   string
}

// Nothing is the empty reply: the page promise resolves to null.
func Nothing() Reply { return Reply{} }

// IsNothing reports whether both slots are absent.
func (r Reply) IsNothing() bool { return r.Value == nil && r.Err == "" }

// ReplyFunc settles one call's reply channel. The core guarantees it fires
// exactly once per inbound message.
type ReplyFunc func(Reply)
