package fields

import "github.com/brandstudio/promptdesk/internal/payload"

// Canonical prompt field names.
const (
	FormatLayout   = "format_layout"
	PrimaryObject  = "primary_object"
	Subject        = "subject"
	Lighting       = "lighting"
	Mood           = "mood"
	Background     = "background"
	PositivePrompt = "positive_prompt"
	NegativePrompt = "negative_prompt"
)

// Canonical image reference field names.
const (
	FileID       = "file_id"
	ImageURL     = "image_url"
	ThumbnailURL = "thumbnail_url"
	DownloadURL  = "download_url"
	ViewURL      = "view_url"
)

// Canonical reference (catalog row) field names.
const (
	RecordID   = "id"
	PromptName = "prompt_name"
	BrandName  = "brand_name"
	Category   = "category"
)

// Prompt is the synonym table for prompt records. The record store names the
// column "Background" while workflows emit "background"; the store spelling
// wins.
var Prompt = Table{
	{Name: FormatLayout, Synonyms: []string{"format_layout"}},
	{Name: PrimaryObject, Synonyms: []string{"primary_object"}},
	{Name: Subject, Synonyms: []string{"subject"}},
	{Name: Lighting, Synonyms: []string{"lighting"}},
	{Name: Mood, Synonyms: []string{"mood"}},
	{Name: Background, Synonyms: []string{"Background", "background"}},
	{Name: PositivePrompt, Synonyms: []string{"positive_prompt"}},
	{Name: NegativePrompt, Synonyms: []string{"negative_prompt"}},
}

// Image is the synonym table for hosted image references.
var Image = Table{
	{Name: FileID, Synonyms: []string{"fileId", "file_id"}},
	{Name: ImageURL, Synonyms: []string{"imageUrl", "image_url", "image", "url"}},
	{Name: ThumbnailURL, Synonyms: []string{"thumbnailUrl", "thumbnail_url", "thumbUrl", "thumb_url", "thumbnailLink", "thumbnail_link"}},
	{Name: DownloadURL, Synonyms: []string{"downloadUrl", "download_url", "downloadLink", "download_link"}},
	{Name: ViewURL, Synonyms: []string{"viewUrl", "view_url", "webViewLink", "web_view_link", "webViewUrl", "web_view_url"}},
}

// Reference is the synonym table for catalog rows from the record store.
var Reference = Table{
	{Name: RecordID, Synonyms: []string{"id", "record_id", "recordId"}},
	{Name: PromptName, Synonyms: []string{"prompt_name", "Prompt_Name", "promptName"}},
	{Name: BrandName, Synonyms: []string{"brand_name", "Brand_Name", "brandName"}},
	{Name: Category, Synonyms: []string{"prompt_category", "category", "prompt_type"}},
}

// PromptRecord is the canonical prompt shape. Every field is always present.
type PromptRecord struct {
	FormatLayout   string `json:"format_layout" yaml:"format_layout"`
	PrimaryObject  string `json:"primary_object" yaml:"primary_object"`
	Subject        string `json:"subject" yaml:"subject"`
	Lighting       string `json:"lighting" yaml:"lighting"`
	Mood           string `json:"mood" yaml:"mood"`
	Background     string `json:"background" yaml:"background"`
	PositivePrompt string `json:"positive_prompt" yaml:"positive_prompt"`
	NegativePrompt string `json:"negative_prompt" yaml:"negative_prompt"`
}

// BuildPromptRecord unwraps an upstream payload of any shape and resolves
// each prompt field. Missing data yields empty strings.
func BuildPromptRecord(v any) PromptRecord {
	return PromptFromRecord(payload.Unwrap(v))
}

// PromptFromRecord resolves prompt fields from an already unwrapped record.
func PromptFromRecord(rec payload.Record) PromptRecord {
	return PromptRecord{
		FormatLayout:   Prompt.Get(rec, FormatLayout),
		PrimaryObject:  Prompt.Get(rec, PrimaryObject),
		Subject:        Prompt.Get(rec, Subject),
		Lighting:       Prompt.Get(rec, Lighting),
		Mood:           Prompt.Get(rec, Mood),
		Background:     Prompt.Get(rec, Background),
		PositivePrompt: Prompt.Get(rec, PositivePrompt),
		NegativePrompt: Prompt.Get(rec, NegativePrompt),
	}
}

// Map returns the record keyed by canonical field name.
func (p PromptRecord) Map() map[string]string {
	return map[string]string{
		FormatLayout:   p.FormatLayout,
		PrimaryObject:  p.PrimaryObject,
		Subject:        p.Subject,
		Lighting:       p.Lighting,
		Mood:           p.Mood,
		Background:     p.Background,
		PositivePrompt: p.PositivePrompt,
		NegativePrompt: p.NegativePrompt,
	}
}
