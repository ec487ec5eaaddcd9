package register

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ovalabs/ovaterm/internal/api"
	"github.com/ovalabs/ovaterm/internal/quiz"
	"github.com/ovalabs/ovaterm/internal/ui/components"
)

var activityKinds = []string{api.ActivityInteractive, api.ActivityEvaluation}

var questionKinds = []string{api.QuestionMultipleChoice, api.QuestionTrueFalse, api.QuestionOpenResponse}

var resourceKinds = []string{api.ResourceImage, api.ResourceVideo, api.ResourceDocument, api.ResourceChart}

func kindChoices(kinds []string) []components.Choice {
	choices := make([]components.Choice, len(kinds))
	for i, k := range kinds {
		choices[i] = components.Choice{Label: strings.ReplaceAll(k, "_", " "), Value: int64(i)}
	}
	return choices
}

func roleChoices() []components.Choice {
	return []components.Choice{
		{Label: api.RoleName(api.RoleAdmin), Value: api.RoleAdmin},
		{Label: api.RoleName(api.RoleDocente), Value: api.RoleDocente},
		{Label: api.RoleName(api.RoleStudent), Value: api.RoleStudent},
	}
}

func moduleChoices(mods []api.Module) []components.Choice {
	choices := make([]components.Choice, len(mods))
	for i, m := range mods {
		choices[i] = components.Choice{Label: m.Title, Value: m.ID}
	}
	return choices
}

func lessonChoices(lessons []api.Lesson) []components.Choice {
	choices := make([]components.Choice, len(lessons))
	for i, l := range lessons {
		choices[i] = components.Choice{Label: l.Title, Value: l.ID}
	}
	return choices
}

func activityChoices(acts []api.Activity) []components.Choice {
	choices := make([]components.Choice, len(acts))
	for i, a := range acts {
		choices[i] = components.Choice{Label: a.Title, Value: a.ID}
	}
	return choices
}

func questionChoices(qs []api.Question) []components.Choice {
	choices := make([]components.Choice, len(qs))
	for i, q := range qs {
		choices[i] = components.Choice{Label: q.Prompt, Value: q.ID}
	}
	return choices
}

func userChoices(users []api.User) []components.Choice {
	choices := make([]components.Choice, len(users))
	for i, u := range users {
		choices[i] = components.Choice{Label: fmt.Sprintf("%s (%s)", u.Name, u.Email), Value: u.ID}
	}
	return choices
}

// NewModuleScreen registers a content module.
func NewModuleScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Módulo",
		SubmitText: "Guardar módulo",
		Fields: func(_ [][]components.Choice) []components.Field {
			return []components.Field{
				components.TextField("Título", "Naturaleza de las ondas", false),
				components.TextField("Descripción", "", false),
				components.NumberField("Orden", "1", true),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			order, err := f.IntValue(2)
			if err != nil {
				return err
			}
			_, err = client.CreateModule(ctx, api.NewModule{
				Title:       f.Value(0),
				Description: f.Value(1),
				Order:       order,
			})
			return err
		},
	})
}

// NewLessonScreen registers a lesson under an existing module.
func NewLessonScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Lección",
		SubmitText: "Guardar lección",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			mods, err := client.Modules(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{moduleChoices(mods)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Módulo", choices[0], false),
				components.TextField("Título", "", false),
				components.TextField("Contenido", "", false),
				components.NumberField("Orden", "1", true),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			moduleID, _ := f.ChoiceValue(0)
			order, err := f.IntValue(3)
			if err != nil {
				return err
			}
			_, err = client.CreateLesson(ctx, api.NewLesson{
				Title:    f.Value(1),
				Content:  f.Value(2),
				Order:    order,
				ModuleID: moduleID,
			})
			return err
		},
	})
}

// NewActivityScreen registers an activity under an existing lesson.
func NewActivityScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Actividad",
		SubmitText: "Guardar actividad",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			lessons, err := client.Lessons(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{lessonChoices(lessons)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Lección", choices[0], false),
				components.TextField("Título", "", false),
				components.TextField("Descripción", "", false),
				components.SelectField("Tipo", kindChoices(activityKinds), false),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			lessonID, _ := f.ChoiceValue(0)
			kindIdx, _ := f.ChoiceValue(3)
			_, err := client.CreateActivity(ctx, api.NewActivity{
				Title:       f.Value(1),
				Description: f.Value(2),
				Kind:        activityKinds[kindIdx],
				LessonID:    lessonID,
			})
			return err
		},
	})
}

// NewQuestionScreen registers a question under an existing activity.
func NewQuestionScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Pregunta",
		SubmitText: "Guardar pregunta",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			acts, err := client.Activities(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{activityChoices(acts)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Actividad", choices[0], false),
				components.TextField("Pregunta", "", false),
				components.SelectField("Tipo", kindChoices(questionKinds), false),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			activityID, _ := f.ChoiceValue(0)
			kindIdx, _ := f.ChoiceValue(2)
			_, err := client.CreateQuestion(ctx, api.NewQuestion{
				Prompt:     f.Value(1),
				Kind:       questionKinds[kindIdx],
				ActivityID: activityID,
			})
			return err
		},
	})
}

// NewOptionScreen registers an answer option under a question.
func NewOptionScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Opción",
		SubmitText: "Guardar opción",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			qs, err := client.Questions(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{questionChoices(qs)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Pregunta", choices[0], false),
				components.TextField("Texto", "", false),
				components.ToggleField("¿Es la respuesta correcta?"),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			questionID, _ := f.ChoiceValue(0)
			_, err := client.CreateOption(ctx, api.NewOption{
				Text:       f.Value(1),
				Correct:    f.Toggled(2),
				QuestionID: questionID,
			})
			return err
		},
	})
}

// NewUserScreen registers a platform account.
func NewUserScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Usuario",
		SubmitText: "Guardar usuario",
		Fields: func(_ [][]components.Choice) []components.Field {
			return []components.Field{
				components.TextField("Nombre", "", false),
				components.TextField("Email", "correo@ejemplo.com", false),
				components.PasswordField("Contraseña"),
				components.SelectField("Rol", roleChoices(), false),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			role, _ := f.ChoiceValue(3)
			_, err := client.CreateUser(ctx, api.NewUser{
				Name:     strings.TrimSpace(f.Value(0)),
				Email:    strings.TrimSpace(f.Value(1)),
				Password: f.Value(2),
				Role:     int(role),
			})
			return err
		},
	})
}

// NewMediaResourceScreen attaches a media resource to a lesson.
func NewMediaResourceScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Recurso Multimedia",
		SubmitText: "Guardar recurso",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			lessons, err := client.Lessons(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{lessonChoices(lessons)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Lección", choices[0], false),
				components.SelectField("Tipo", kindChoices(resourceKinds), false),
				components.TextField("URL", "https://", false),
				components.TextField("Descripción", "", true),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			lessonID, _ := f.ChoiceValue(0)
			kindIdx, _ := f.ChoiceValue(1)
			_, err := client.CreateMediaResource(ctx, api.NewMediaResource{
				Kind:        resourceKinds[kindIdx],
				URL:         strings.TrimSpace(f.Value(2)),
				Description: f.Value(3),
				LessonID:    lessonID,
			})
			return err
		},
	})
}

// NewProgressScreen marks a lesson as completed for a user.
func NewProgressScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Progreso",
		SubmitText: "Guardar progreso",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			users, err := client.Users(ctx)
			if err != nil {
				return nil, err
			}
			lessons, err := client.Lessons(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{userChoices(users), lessonChoices(lessons)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Usuario", choices[0], false),
				components.SelectField("Lección", choices[1], false),
				components.ToggleField("Completada"),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			userID, _ := f.ChoiceValue(0)
			lessonID, _ := f.ChoiceValue(1)
			_, err := client.CreateProgress(ctx, api.NewProgress{
				Completed: f.Toggled(2),
				UserID:    userID,
				LessonID:  lessonID,
			})
			return err
		},
	})
}

// NewResultScreen records a grade by hand, for activities graded
// outside the quiz flow.
func NewResultScreen(client *api.Client) *Screen {
	return NewScreen(Definition{
		Title:      "Registrar Resultado",
		SubmitText: "Guardar resultado",
		LoadChoices: func(ctx context.Context) ([][]components.Choice, error) {
			users, err := client.Users(ctx)
			if err != nil {
				return nil, err
			}
			acts, err := client.Activities(ctx)
			if err != nil {
				return nil, err
			}
			return [][]components.Choice{userChoices(users), activityChoices(acts)}, nil
		},
		Fields: func(choices [][]components.Choice) []components.Field {
			return []components.Field{
				components.SelectField("Usuario", choices[0], false),
				components.SelectField("Actividad", choices[1], false),
				components.TextField("Calificación", "0.0 a 5.0", false),
			}
		},
		Submit: func(ctx context.Context, f components.Form) error {
			userID, _ := f.ChoiceValue(0)
			activityID, _ := f.ChoiceValue(1)
			grade, err := strconv.ParseFloat(strings.TrimSpace(f.Value(2)), 64)
			if err != nil {
				return fmt.Errorf("parse calificación: %w", err)
			}
			if grade < 0 || grade > quiz.MaxGrade {
				return fmt.Errorf("calificación fuera de rango: %.2f", grade)
			}
			_, err = client.CreateResult(ctx, api.NewResult{
				Grade:      quiz.Round2(grade),
				UserID:     userID,
				ActivityID: activityID,
			})
			return err
		},
	})
}
