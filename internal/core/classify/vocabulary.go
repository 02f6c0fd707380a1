package classify

import "github.com/kirillkom/docsense/internal/core/domain"

// LanguageRule names a language and the indicator words that vote for it.
type LanguageRule struct {
	Name       string
	Indicators []string
	// Threshold is exclusive: hits must exceed it.
	Threshold int
}

// TypeBucket maps a keyword list to the document type it votes for.
type TypeBucket struct {
	Type  domain.DocumentType
	Terms []string
}

// Vocabulary carries every word list the classifier matches against.
// Slices are read-only after construction.
type Vocabulary struct {
	Languages        []LanguageRule
	DefaultLanguage  string
	TypeBuckets      []TypeBucket
	TechnicalTerms   []string
	SpecializedTerms []string
	StopWords        []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Languages: []LanguageRule{
			{Name: "Hindi/Hinglish", Threshold: 2, Indicators: []string{"के", "का", "की", "में", "से", "को", "और", "है", "हैं", "आवास", "दर"}},
			{Name: "Spanish", Threshold: 3, Indicators: []string{"el", "la", "los", "las", "de", "en", "y", "que", "para", "con"}},
			{Name: "French", Threshold: 3, Indicators: []string{"le", "la", "les", "de", "et", "en", "un", "une", "pour", "avec"}},
			{Name: "German", Threshold: 3, Indicators: []string{"der", "die", "das", "und", "in", "zu", "den", "von", "mit", "für"}},
		},
		DefaultLanguage: "English",
		TypeBuckets: []TypeBucket{
			{Type: domain.DocumentTypeAcademicPaper, Terms: []string{"abstract", "methodology", "literature review", "hypothesis", "conclusion", "references", "citation"}},
			{Type: domain.DocumentTypeLegalContract, Terms: []string{"whereas", "party", "agreement", "contract", "terms and conditions", "liability", "jurisdiction"}},
			{Type: domain.DocumentTypeFinancialReport, Terms: []string{"revenue", "profit", "loss", "balance sheet", "cash flow", "assets", "liabilities", "equity"}},
			{Type: domain.DocumentTypeTechnicalManual, Terms: []string{"procedure", "specification", "installation", "configuration", "troubleshooting", "manual"}},
			{Type: domain.DocumentTypePolicyDocument, Terms: []string{"policy", "guideline", "procedure", "compliance", "regulation", "requirement", "entitlement"}},
			{Type: domain.DocumentTypeMedicalRecord, Terms: []string{"patient", "diagnosis", "treatment", "medication", "symptoms", "medical history", "prescription"}},
		},
		TechnicalTerms: []string{
			"algorithm", "methodology", "implementation", "specification", "configuration",
			"optimization", "analysis", "framework", "architecture", "infrastructure",
		},
		SpecializedTerms: []string{
			"pursuant", "heretofore", "notwithstanding", "aforementioned", "whereby",
			"coefficient", "derivative", "integral", "hypothesis", "paradigm",
		},
		StopWords: []string{
			"that", "this", "with", "from", "they", "been", "have", "were", "said", "each", "which", "their",
			"time", "will", "about", "would", "there", "could", "other", "more", "very", "what", "know", "just",
			"first", "into", "over", "think", "also", "your", "work", "life", "only", "can", "still", "should",
			"after", "being", "now", "made", "before", "here", "through", "when", "where", "much", "some",
			"these", "many", "then", "them", "well",
		},
	}
}
