package api

// User roles as stored by the platform.
const (
	RoleAdmin   = 1
	RoleDocente = 2
	RoleStudent = 3
)

// Activity kinds.
const (
	ActivityInteractive = "interactiva"
	ActivityEvaluation  = "evaluacion"
)

// Question kinds.
const (
	QuestionMultipleChoice = "opcion_multiple"
	QuestionTrueFalse      = "verdadero_falso"
	QuestionOpenResponse   = "respuesta_abierta"
)

// Media resource kinds.
const (
	ResourceImage    = "imagen"
	ResourceVideo    = "video"
	ResourceDocument = "documento"
	ResourceChart    = "grafico"
)

// Module is a top-level content unit grouping lessons.
type Module struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Order       *int   `json:"orden"`
}

// Lesson belongs to a module and carries the learning content.
type Lesson struct {
	ID       int64  `json:"id"`
	Title    string `json:"titulo"`
	Content  string `json:"contenido"`
	Order    *int   `json:"orden"`
	ModuleID int64  `json:"modulo"`
}

// Activity is a gradable unit attached to a lesson.
type Activity struct {
	ID          int64  `json:"id"`
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Kind        string `json:"tipo"`
	LessonID    int64  `json:"leccion"`
}

// Question belongs to exactly one activity. Read-only for clients.
type Question struct {
	ID         int64  `json:"id"`
	Prompt     string `json:"pregunta"`
	Kind       string `json:"tipo"`
	ActivityID int64  `json:"actividad"`
}

// Option is one selectable answer to a question.
type Option struct {
	ID         int64  `json:"id"`
	Text       string `json:"texto"`
	Correct    bool   `json:"es_correcta"`
	QuestionID int64  `json:"pregunta"`
}

// Result is the persisted grade for one (user, activity) pair.
// The server decorates list responses with display names.
type Result struct {
	ID            int64   `json:"id"`
	Grade         float64 `json:"calificacion"`
	UserID        int64   `json:"usuario"`
	ActivityID    int64   `json:"actividad"`
	UserName      string  `json:"usuario_nombre,omitempty"`
	ActivityTitle string  `json:"actividad_titulo,omitempty"`
	CompletedAt   string  `json:"fecha_completado,omitempty"`
}

// NewResult is the payload for creating a result.
type NewResult struct {
	Grade      float64 `json:"calificacion"`
	UserID     int64   `json:"usuario"`
	ActivityID int64   `json:"actividad"`
}

// Progress marks a lesson as completed (or not) for a user.
type Progress struct {
	ID        int64 `json:"id"`
	Completed bool  `json:"completado"`
	UserID    int64 `json:"usuario"`
	LessonID  int64 `json:"leccion"`
}

// NewProgress is the payload for recording lesson progress.
type NewProgress struct {
	Completed bool  `json:"completado"`
	UserID    int64 `json:"usuario"`
	LessonID  int64 `json:"leccion"`
}

// User is a platform account. The API returns the password in clear
// text and login matches it client-side; that is the collaborator's
// contract, not ours to fix here.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Role     int    `json:"rol"`
}

// NewUser is the payload for registering a user.
type NewUser struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contrasena"`
	Role     int    `json:"rol"`
}

// MediaResource is an external asset attached to a lesson.
type MediaResource struct {
	ID          int64  `json:"id"`
	Kind        string `json:"tipo"`
	URL         string `json:"url"`
	Description string `json:"descripcion"`
	LessonID    int64  `json:"leccion"`
}

// NewModule is the payload for creating a module.
type NewModule struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Order       *int   `json:"orden"`
}

// NewLesson is the payload for creating a lesson.
type NewLesson struct {
	Title    string `json:"titulo"`
	Content  string `json:"contenido"`
	Order    *int   `json:"orden"`
	ModuleID int64  `json:"modulo"`
}

// NewActivity is the payload for creating an activity.
type NewActivity struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
	Kind        string `json:"tipo"`
	LessonID    int64  `json:"leccion"`
}

// NewQuestion is the payload for creating a question.
type NewQuestion struct {
	Prompt     string `json:"pregunta"`
	Kind       string `json:"tipo"`
	ActivityID int64  `json:"actividad"`
}

// NewOption is the payload for creating an option.
type NewOption struct {
	Text       string `json:"texto"`
	Correct    bool   `json:"es_correcta"`
	QuestionID int64  `json:"pregunta"`
}

// NewMediaResource is the payload for attaching a media resource.
type NewMediaResource struct {
	Kind        string `json:"tipo"`
	URL         string `json:"url"`
	Description string `json:"descripcion"`
	LessonID    int64  `json:"leccion"`
}

// RoleName returns the display name for a role code.
func RoleName(role int) string {
	switch role {
	case RoleAdmin:
		return "Administrador"
	case RoleDocente:
		return "Docente"
	case RoleStudent:
		return "Estudiante"
	default:
		return "Desconocido"
	}
}
