package result

// Task terminal statuses
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
)

// Record is the immutable terminal result handed to delivery.
// Field names follow the downstream consumer's wire format
type Record struct {
	ProjectID          int64   `json:"total_project_id"`
	Score              int     `json:"score"`
	InputText          string  `json:"input_text"`
	TranslationText    string  `json:"translation_text"`
	InputTextKey       string  `json:"input_text_key"`
	TranslationTextKey string  `json:"translation_text_key"`
	TranslationAPIType string  `json:"translation_api_type"`
	InferenceTime      float64 `json:"inference_time"`
	Status             string  `json:"status"`
	InputLanguage      string  `json:"input_language"`
	OutputLanguage     string  `json:"output_language"`
	TaskName           string  `json:"task_name"`
	Description        string  `json:"description"`
	E5                 float64 `json:"e5"`
	LaBSE              float64 `json:"labse"`
	BertScore          float64 `json:"bertscore"`
	CometScore         float64 `json:"comet_score"`
}
