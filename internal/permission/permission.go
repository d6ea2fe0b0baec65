// Package permission provides permission-check types for tool use gating.
package permission

import "context"

// Mode represents different permission handling modes.
type Mode string

const (
	// ModeDefault uses standard permission prompts.
	ModeDefault Mode = "default"
	// ModeAcceptEdits automatically accepts file edits.
	ModeAcceptEdits Mode = "acceptEdits"
	// ModePlan enables plan mode for implementation planning.
	ModePlan Mode = "plan"
	// ModeBypassPermissions bypasses all permission checks.
	ModeBypassPermissions Mode = "bypassPermissions"
)

// UpdateType represents the type of permission update.
type UpdateType string

const (
	// UpdateTypeAddRules adds new permission rules.
	UpdateTypeAddRules UpdateType = "addRules"
	// UpdateTypeReplaceRules replaces existing permission rules.
	UpdateTypeReplaceRules UpdateType = "replaceRules"
	// UpdateTypeRemoveRules removes permission rules.
	UpdateTypeRemoveRules UpdateType = "removeRules"
	// UpdateTypeSetMode sets the permission mode.
	UpdateTypeSetMode UpdateType = "setMode"
	// UpdateTypeAddDirectories adds accessible directories.
	UpdateTypeAddDirectories UpdateType = "addDirectories"
	// UpdateTypeRemoveDirectories removes accessible directories.
	UpdateTypeRemoveDirectories UpdateType = "removeDirectories"
)

// UpdateDestination represents where permission updates are stored.
type UpdateDestination string

const (
	// DestUserSettings stores in user-level settings.
	DestUserSettings UpdateDestination = "userSettings"
	// DestProjectSettings stores in project-level settings.
	DestProjectSettings UpdateDestination = "projectSettings"
	// DestLocalSettings stores in local-level settings.
	DestLocalSettings UpdateDestination = "localSettings"
	// DestSession stores in the current session only.
	DestSession UpdateDestination = "session"
)

// Behavior represents the permission behavior for a rule.
type Behavior string

const (
	// BehaviorAllow automatically allows the operation.
	BehaviorAllow Behavior = "allow"
	// BehaviorDeny automatically denies the operation.
	BehaviorDeny Behavior = "deny"
	// BehaviorAsk prompts the user for permission.
	BehaviorAsk Behavior = "ask"
)

// RuleValue represents a single permission rule.
type RuleValue struct {
	ToolName    string
	RuleContent *string
}

// Update represents a permission update request or suggestion.
type Update struct {
	Type        UpdateType
	Rules       []*RuleValue
	Behavior    *Behavior
	Mode        *Mode
	Directories []string
	Destination *UpdateDestination
}

// ToWire converts the Update to the CLI's camelCase wire map.
func (u *Update) ToWire() map[string]any {
	result := make(map[string]any, 6)
	result["type"] = string(u.Type)

	if u.Destination != nil {
		result["destination"] = string(*u.Destination)
	}

	if len(u.Rules) > 0 {
		rules := make([]map[string]any, len(u.Rules))
		for i, rule := range u.Rules {
			ruleMap := map[string]any{
				"toolName": rule.ToolName,
			}
			if rule.RuleContent != nil {
				ruleMap["ruleContent"] = *rule.RuleContent
			}

			rules[i] = ruleMap
		}

		result["rules"] = rules
	}

	if u.Behavior != nil {
		result["behavior"] = string(*u.Behavior)
	}

	if u.Mode != nil {
		result["mode"] = string(*u.Mode)
	}

	if len(u.Directories) > 0 {
		result["directories"] = u.Directories
	}

	return result
}

// UpdateFromWire decodes a permission update suggestion from the wire map
// carried in a can_use_tool request.
func UpdateFromWire(data map[string]any) *Update {
	update := &Update{}

	if t, ok := data["type"].(string); ok {
		update.Type = UpdateType(t)
	}

	if d, ok := data["destination"].(string); ok {
		dest := UpdateDestination(d)
		update.Destination = &dest
	}

	if b, ok := data["behavior"].(string); ok {
		behavior := Behavior(b)
		update.Behavior = &behavior
	}

	if m, ok := data["mode"].(string); ok {
		mode := Mode(m)
		update.Mode = &mode
	}

	if dirs, ok := data["directories"].([]any); ok {
		for _, d := range dirs {
			if dir, ok := d.(string); ok {
				update.Directories = append(update.Directories, dir)
			}
		}
	}

	if rules, ok := data["rules"].([]any); ok {
		for _, r := range rules {
			ruleMap, ok := r.(map[string]any)
			if !ok {
				continue
			}

			rule := &RuleValue{}
			if name, ok := ruleMap["toolName"].(string); ok {
				rule.ToolName = name
			}

			if content, ok := ruleMap["ruleContent"].(string); ok {
				rule.RuleContent = &content
			}

			update.Rules = append(update.Rules, rule)
		}
	}

	return update
}

// Context provides context for tool permission callbacks.
type Context struct {
	// Suggestions are permission update suggestions sent by the CLI.
	Suggestions []*Update
}

// Result is the interface for permission decision results.
type Result interface {
	GetBehavior() string
}

// Compile-time verification that permission result types implement Result.
var (
	_ Result = (*ResultAllow)(nil)
	_ Result = (*ResultDeny)(nil)
)

// ResultAllow represents an allow decision.
type ResultAllow struct {
	// UpdatedInput optionally replaces the tool's input parameters.
	UpdatedInput map[string]any
	// UpdatedPermissions are permission updates to apply.
	UpdatedPermissions []*Update
}

// GetBehavior implements Result.
func (r *ResultAllow) GetBehavior() string { return "allow" }

// ResultDeny represents a deny decision.
type ResultDeny struct {
	// Message is the reason for denial, shown to the model.
	Message string
	// Interrupt stops the current turn entirely.
	Interrupt bool
}

// GetBehavior implements Result.
func (r *ResultDeny) GetBehavior() string { return "deny" }

// Callback is called before each tool use for permission checking.
type Callback func(
	ctx context.Context,
	toolName string,
	input map[string]any,
	permCtx *Context,
) (Result, error)
