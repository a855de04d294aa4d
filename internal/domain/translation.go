package domain

import "context"

// LangAuto is the sentinel source language that requests detection.
const LangAuto = "auto"

// TranslationResult carries a translated text and the language the provider
// believes the input was in. DetectedLang may be empty when src was explicit.
type TranslationResult struct {
	Text         string
	DetectedLang string
}

// Translator is the remote translation provider contract.
type Translator interface {
	// Translate converts text from src to dest. src may be LangAuto.
	Translate(ctx context.Context, text, src, dest string) (TranslationResult, error)
	// Detect returns the ISO 639-1 code of the text's language.
	Detect(ctx context.Context, text string) (string, error)
}

// Languages maps supported ISO 639-1 codes to English language names.
// Mirrors the subset the translation provider is prompted with.
var Languages = map[string]string{
	"ar": "Arabic",
	"bn": "Bengali",
	"de": "German",
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"gu": "Gujarati",
	"hi": "Hindi",
	"ja": "Japanese",
	"kn": "Kannada",
	"ml": "Malayalam",
	"mr": "Marathi",
	"pa": "Punjabi",
	"pt": "Portuguese",
	"ru": "Russian",
	"ta": "Tamil",
	"te": "Telugu",
	"ur": "Urdu",
	"zh": "Chinese",
}
