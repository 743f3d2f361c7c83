package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/convoy-rl/convoy/experiment"
)

var (
	locatorPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+(:[A-Za-z0-9_.-]+)?$`)
	modulePattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)
)

// CheckFields runs the per-field checks the document schema cannot express
// on a typed descriptor: entry-name uniqueness within a group, feature
// parameter coherence, and reference-format advisories.
func CheckFields(d *experiment.Descriptor) *Result {
	r := &Result{}

	for name, feat := range d.Agent.Features {
		path := "agent.features." + name
		if feat.Parameterized() {
			if feat.Buckets < 1 {
				r.AddError(KindRange, path+".buckets", feat.Buckets, "bucketed feature needs a positive bucket count")
			}
			if !feat.Mode.Known() {
				r.AddError(KindUnknownEnum, path+".mode", string(feat.Mode), "mode must be continuous or discrete")
			}
		}
	}

	if !d.Agent.ActionType.Known() {
		r.AddError(KindUnknownEnum, "agent.action_type", int(d.Agent.ActionType), "action_type must be a recognized action space code")
	}

	if d.Policy.Trainer.Module != "" && !modulePattern.MatchString(d.Policy.Trainer.Module) {
		r.AddWarning("policy.trainer.module %q does not look like a dotted module path", d.Policy.Trainer.Module)
	}

	for groupName, group := range d.AgentList {
		seen := make(map[string]bool, len(group))
		for i, entry := range group {
			path := fmt.Sprintf("agent_list.%s.%d", groupName, i)
			name := entry.DisplayName()
			if seen[name] {
				r.AddError(KindDuplicateKey, path+".name", name, "entry name must be unique within its group")
			}
			seen[name] = true
			if entry.Locator != "" && !locatorPattern.MatchString(entry.Locator) {
				r.AddWarning("%s.locator %q does not look like a policy locator (pkg:name)", path, entry.Locator)
			}
		}
	}

	return r
}

// CrossCheck runs only the cross-field checks. It is usable on its own to
// re-validate a descriptor built by other means.
func CrossCheck(d *experiment.Descriptor) *Result {
	r := &Result{}

	checkPathField(r, "scenarios_root", d.ScenariosRoot)
	checkPathField(r, "result_path", d.ResultPath)

	for name := range d.Scenarios {
		if !validPathSegment(name) {
			r.AddError(KindPathTraversal, "scenarios."+name, name,
				"scenario name must be a single path segment with no upward traversal")
		}
	}

	seenItems := make(map[experiment.EvaluationItem]bool, len(d.EvaluationItems))
	for i, item := range d.EvaluationItems {
		path := fmt.Sprintf("evaluation_items.%d", i)
		if !item.Known() {
			r.AddError(KindUnknownEnum, path, string(item), "evaluation item must be a recognized metric")
			continue
		}
		if seenItems[item] {
			r.AddError(KindDuplicateKey, path, string(item), "evaluation item listed more than once")
		}
		seenItems[item] = true
	}

	if n := d.TotalAgents(); n > 0 && d.Policy.Model.AgentNumber != n {
		r.AddWarning("policy.model.agent_number is %d but agent_list has %d enabled entries",
			d.Policy.Model.AgentNumber, n)
	}

	return r
}

func checkPathField(r *Result, field, value string) {
	if value == "" {
		return
	}
	for _, seg := range strings.FieldsFunc(value, func(c rune) bool { return c == '/' || c == '\\' }) {
		if seg == ".." {
			r.AddError(KindPathTraversal, field, value, "path must not contain upward-traversal segments")
			return
		}
	}
}

func validPathSegment(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
