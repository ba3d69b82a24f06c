package guide

// DefaultGroup collects actions that carry no group.
const DefaultGroup = "default"

// Stage is a known sub-step of the environment setup flow.
// Group keys that are not recognized map to StageDefault.
type Stage int

const (
	StageDefault Stage = iota
	StageShellCheck
	StageSetupFiles
	StageCopyBlock
	StageApplyChanges
	StageValidate
)

// KnownStages lists the sub-steps in the order they are performed.
var KnownStages = []Stage{
	StageShellCheck,
	StageSetupFiles,
	StageCopyBlock,
	StageApplyChanges,
	StageValidate,
}

func (s Stage) String() string {
	switch s {
	case StageShellCheck:
		return "shell_check"
	case StageSetupFiles:
		return "setup_files"
	case StageCopyBlock:
		return "copy_block"
	case StageApplyChanges:
		return "apply_changes"
	case StageValidate:
		return "validate"
	default:
		return DefaultGroup
	}
}

// Title and Description are shown above the actions of a stage.
func (s Stage) Title() string {
	switch s {
	case StageShellCheck:
		return "Identify your shell"
	case StageSetupFiles:
		return "Create and open the file"
	case StageCopyBlock:
		return "Copy the configuration block"
	case StageApplyChanges:
		return "Apply the changes"
	case StageValidate:
		return "Validate the configuration"
	default:
		return ""
	}
}

func (s Stage) Description() string {
	switch s {
	case StageShellCheck:
		return "Run this command to find out which option (A or B) to use in the next sub-steps."
	case StageSetupFiles:
		return "Create the file first so it exists, then open it to edit it."
	case StageCopyBlock:
		return "Paste this block at the end of the file you opened. Remember to replace YOUR_ANDROID_SDK_PATH."
	case StageApplyChanges:
		return "Save and close the file, then run the command for your shell so the terminal picks up the changes."
	case StageValidate:
		return "Open a NEW terminal and confirm everything works. If you get an error, check the details below."
	default:
		return ""
	}
}

var stageByKey = map[string]Stage{
	"shell_check":  StageShellCheck,
	"zshrc_setup":  StageSetupFiles,
	"bash_setup":   StageSetupFiles,
	"zshrc":        StageSetupFiles,
	"bash_profile": StageSetupFiles,
	"common":       StageCopyBlock,
	"zshrc_apply":  StageApplyChanges,
	"bash_apply":   StageApplyChanges,
	"validation":   StageValidate,
}

func StageOf(key string) Stage {
	if s, ok := stageByKey[key]; ok {
		return s
	}
	return StageDefault
}

// Shell is the option a two-way stage is split on.
type Shell string

const (
	ShellAny  Shell = ""
	ShellZsh  Shell = "zsh"
	ShellBash Shell = "bash"
)

func (s Shell) Label() string {
	switch s {
	case ShellZsh:
		return "Option A: ZSH (your shell is /bin/zsh)"
	case ShellBash:
		return "Option B: Bash (your shell is /bin/bash)"
	default:
		return ""
	}
}

func ShellOf(key string) Shell {
	switch key {
	case "zshrc_setup", "zshrc", "zshrc_apply":
		return ShellZsh
	case "bash_setup", "bash_profile", "bash_apply":
		return ShellBash
	default:
		return ShellAny
	}
}

// Group is a run of actions sharing a group key, in their original order.
type Group struct {
	Key     string
	Stage   Stage
	Shell   Shell
	Actions []Action
}

// Groups are ordered by the first appearance of each key.
type Groups []Group

// GroupActions partitions actions by group key. The partition is stable:
// every action lands in exactly one group and keeps its relative order.
func GroupActions(actions []Action) Groups {
	var groups Groups
	index := make(map[string]int)
	for _, a := range actions {
		key := a.Group
		if key == "" {
			key = DefaultGroup
		}

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Key:   key,
				Stage: StageOf(key),
				Shell: ShellOf(key),
			})
		}
		groups[i].Actions = append(groups[i].Actions, a)
	}
	return groups
}

func (gs Groups) Lookup(key string) (Group, bool) {
	for _, g := range gs {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

func (gs Groups) ByStage(stage Stage) Groups {
	var res Groups
	for _, g := range gs {
		if g.Stage == stage {
			res = append(res, g)
		}
	}
	return res
}

// Staged reports whether any group belongs to a known stage.
func (gs Groups) Staged() bool {
	for _, g := range gs {
		if g.Stage != StageDefault {
			return true
		}
	}
	return false
}

// Flatten returns the actions group by group.
func (gs Groups) Flatten() []Action {
	var res []Action
	for _, g := range gs {
		res = append(res, g.Actions...)
	}
	return res
}
