package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/kaywahmatch/create-project/internal/cli/wizard"
	"github.com/kaywahmatch/create-project/internal/core/project"
	"github.com/kaywahmatch/create-project/internal/defs"
	"github.com/kaywahmatch/create-project/pkg/models"
)

// Question names, also the keys of the collected answers.
const (
	QProjectName      = "projectName"
	QShouldOverwrite  = "shouldOverwrite"
	QOverwriteChecker = "overwriteChecker"
	QPackageName      = "packageName"
	QTypeScript       = "needsTypeScript"
	QJSX              = "needsJsx"
	QRouter           = "needsRouter"
	QPinia            = "needsPinia"
	QVitest           = "needsVitest"
	QE2E              = "needsE2eTesting"
	QESLint           = "needsEslint"
	QPrettier         = "needsPrettier"
	QTemplate         = "template"
)

// CancelledMessage is the reason reported when the user declines to overwrite.
const CancelledMessage = "✖ Operation cancelled"

// session carries the per-run inputs the question predicates close over.
type session struct {
	inv       Invocation
	mode      models.SelectionMode
	templates []wizard.Option
}

// targetDir returns the target directory as typed, or as answered.
func (s *session) targetDir(a wizard.Answers) string {
	if s.inv.TargetDir != "" {
		return s.inv.TargetDir
	}
	if v, ok := a.String(QProjectName); ok && v != "" {
		return v
	}
	return DefaultProjectName(s.inv.TargetDir)
}

// root returns the absolute path of the target directory.
func (s *session) root(a wizard.Answers) string {
	dir := s.targetDir(a)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(s.inv.Cwd, dir)
}

// nameSource is the directory name package names are derived from.
func (s *session) nameSource(a wizard.Answers) string {
	return filepath.Base(s.root(a))
}

// suggestedPackageName coerces the directory name, falling back to a fixed
// literal when nothing valid remains.
func (s *session) suggestedPackageName(a wizard.Answers) string {
	if name := project.ToValidPackageName(s.nameSource(a)); name != "" {
		return name
	}
	return defs.FallbackPackageName
}

func (s *session) askFeatures(wizard.Answers) bool {
	return !s.inv.Flags.IsFeatureFlagsUsed()
}

// questions builds the ordered prompt sequence for one run.
func (s *session) questions() []wizard.Question {
	qs := []wizard.Question{
		{
			Name:    QProjectName,
			Kind:    wizard.KindText,
			Message: wizard.Static("Project name:"),
			Default: wizard.Value(DefaultProjectName(s.inv.TargetDir)),
			ShouldAsk: func(wizard.Answers) bool {
				return s.inv.TargetDir == ""
			},
		},
		{
			Name:    QShouldOverwrite,
			Kind:    wizard.KindConfirm,
			Message: s.overwriteMessage,
			Default: wizard.Value(false),
			ShouldAsk: func(a wizard.Answers) bool {
				return !s.inv.Flags.Force && !project.CanSkipEmptying(s.root(a))
			},
		},
		{
			Name: QOverwriteChecker,
			Kind: wizard.KindCheckpoint,
			Check: func(a wizard.Answers) error {
				if v, ok := a.Bool(QShouldOverwrite); ok && !v {
					return wizard.Cancel(CancelledMessage)
				}
				return nil
			},
		},
		{
			Name:     QPackageName,
			Kind:     wizard.KindText,
			Message:  wizard.Static("Package name:"),
			Default:  func(a wizard.Answers) any { return s.suggestedPackageName(a) },
			Validate: project.ValidatePackageName,
			ShouldAsk: func(a wizard.Answers) bool {
				return !project.IsValidPackageName(s.nameSource(a))
			},
		},
	}

	if s.mode == models.SelectionTemplate {
		return append(qs, s.templateQuestions()...)
	}
	return append(qs, s.featureQuestions()...)
}

func (s *session) overwriteMessage(a wizard.Answers) string {
	dir := s.targetDir(a)
	if dir == "." {
		return "Current directory is not empty. Remove existing files and continue?"
	}
	return fmt.Sprintf("Target directory %q is not empty. Remove existing files and continue?", dir)
}

func (s *session) toggle(name, message string) wizard.Question {
	return wizard.Question{
		Name:      name,
		Kind:      wizard.KindToggle,
		Message:   wizard.Static(message),
		Default:   wizard.Value(false),
		Active:    "Yes",
		Inactive:  "No",
		ShouldAsk: s.askFeatures,
	}
}

func (s *session) featureQuestions() []wizard.Question {
	return []wizard.Question{
		s.toggle(QTypeScript, "Add TypeScript?"),
		s.toggle(QJSX, "Add JSX Support?"),
		s.toggle(QRouter, "Add Vue Router for Single Page Application development?"),
		s.toggle(QPinia, "Add Pinia for state management?"),
		s.toggle(QVitest, "Add Vitest for Unit Testing?"),
		{
			Name:    QE2E,
			Kind:    wizard.KindSelect,
			Message: wizard.Static("Add an End-to-End Testing Solution?"),
			Default: wizard.Value(string(models.E2ENone)),
			Options: []wizard.Option{
				{Label: "No", Value: string(models.E2ENone)},
				{Label: "Cypress", Value: string(models.E2ECypress), Desc: "also supports unit testing with Cypress Component Testing"},
				{Label: "Playwright", Value: string(models.E2EPlaywright), Desc: "https://playwright.dev/"},
			},
			ShouldAsk: s.askFeatures,
		},
		s.toggle(QESLint, "Add ESLint for code quality?"),
		{
			Name:     QPrettier,
			Kind:     wizard.KindToggle,
			Message:  wizard.Static("Add Prettier for code formatting?"),
			Default:  wizard.Value(false),
			Active:   "Yes",
			Inactive: "No",
			ShouldAsk: func(a wizard.Answers) bool {
				eslint, _ := a.Bool(QESLint)
				return s.askFeatures(a) && eslint
			},
		},
	}
}

func (s *session) templateQuestions() []wizard.Question {
	opts := append([]wizard.Option{{
		Label: models.BuiltinTemplate,
		Value: models.BuiltinTemplate,
		Desc:  "builtin template, features chosen by flags",
	}}, s.templates...)

	return []wizard.Question{{
		Name:      QTemplate,
		Kind:      wizard.KindSelect,
		Message:   wizard.Static("Select a template:"),
		Default:   wizard.Value(models.BuiltinTemplate),
		Options:   opts,
		ShouldAsk: s.askFeatures,
	}}
}
