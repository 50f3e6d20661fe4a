package workflow

import (
	"encoding/json"
	"sort"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Action types understood by the action executor. Other values are stored as-is
// and fail at execution time.
const (
	ActionUpdateStatus      = "update_status"
	ActionAssignWorkflow    = "assign_workflow"
	ActionAssignPriority    = "assign_priority"
	ActionAddTag            = "add_tag"
	ActionSendNotification  = "send_notification"
	ActionCreateFulfillment = "create_fulfillment"
	ActionAllocateInventory = "allocate_inventory"
	ActionUpdateCustomField = "update_custom_field"
)

// Action is one side effect of a step or an automation rule.
//
// On the wire an action is a flat object: {"type": "add_tag", "tag_name": "high-value"}.
// A nested "params" object is accepted as well and merged into the flat keys.
type Action struct {
	Type   string
	Params map[string]kernel.Value
}

func NewAction(actionType string, params map[string]kernel.Value) (Action, error) {
	a := Action{Type: actionType, Params: make(map[string]kernel.Value, len(params))}
	for k, v := range params {
		a.Params[k] = v
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

func (a Action) Validate() error {
	if a.Type == "" {
		return errs.NewValueIsRequiredError("action type")
	}
	return nil
}

// Param returns the named parameter, Null when absent.
func (a Action) Param(key string) kernel.Value {
	if a.Params == nil {
		return kernel.Null()
	}
	return a.Params[key]
}

// StringParam returns the first non-empty string reading among keys.
func (a Action) StringParam(keys ...string) string {
	for _, k := range keys {
		if s := a.Param(k).String(); s != "" {
			return s
		}
	}
	return ""
}

// Keys returns the parameter names in lexical order.
func (a Action) Keys() []string {
	keys := make([]string, 0, len(a.Params))
	for k := range a.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (a Action) MarshalJSON() ([]byte, error) {
	flat := make(map[string]kernel.Value, len(a.Params)+1)
	for k, v := range a.Params {
		flat[k] = v
	}
	flat["type"] = kernel.String(a.Type)
	return json.Marshal(flat)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Action{Params: make(map[string]kernel.Value, len(raw))}
	for k, msg := range raw {
		switch k {
		case "type":
			if err := json.Unmarshal(msg, &out.Type); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("action type", err)
			}
		case "params":
			var nested map[string]kernel.Value
			if err := json.Unmarshal(msg, &nested); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("action params", err)
			}
			for nk, nv := range nested {
				out.Params[nk] = nv
			}
		default:
			var v kernel.Value
			if err := json.Unmarshal(msg, &v); err != nil {
				return errs.NewValueIsInvalidErrorWithCause(k, err)
			}
			out.Params[k] = v
		}
	}

	*a = out
	return nil
}
