package domain

import (
	"fmt"
	"strings"
)

type DocumentType int

// Declaration order matters: classification ties go to the earlier variant.
const (
	DocumentTypeAcademicPaper DocumentType = iota
	DocumentTypeLegalContract
	DocumentTypeFinancialReport
	DocumentTypeTechnicalManual
	DocumentTypePolicyDocument
	DocumentTypeMedicalRecord
	DocumentTypeBusinessProposal
	DocumentTypeResearchReport
	DocumentTypeRegulatoryFiling
	DocumentTypeEducationalMaterial
	DocumentTypeNewsArticle
	DocumentTypeGeneralDocument
)

var documentTypeNames = [...]string{
	DocumentTypeAcademicPaper:       "academic_paper",
	DocumentTypeLegalContract:       "legal_contract",
	DocumentTypeFinancialReport:     "financial_report",
	DocumentTypeTechnicalManual:     "technical_manual",
	DocumentTypePolicyDocument:      "policy_document",
	DocumentTypeMedicalRecord:       "medical_record",
	DocumentTypeBusinessProposal:    "business_proposal",
	DocumentTypeResearchReport:      "research_report",
	DocumentTypeRegulatoryFiling:    "regulatory_filing",
	DocumentTypeEducationalMaterial: "educational_material",
	DocumentTypeNewsArticle:         "news_article",
	DocumentTypeGeneralDocument:     "general_document",
}

func (t DocumentType) String() string {
	if t < 0 || int(t) >= len(documentTypeNames) {
		return documentTypeNames[DocumentTypeGeneralDocument]
	}
	return documentTypeNames[t]
}

// Title renders "policy_document" as "Policy Document".
func (t DocumentType) Title() string {
	return titleWords(t.String())
}

func (t DocumentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *DocumentType) UnmarshalText(text []byte) error {
	parsed, err := ParseDocumentType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseDocumentType(value string) (DocumentType, error) {
	for i, name := range documentTypeNames {
		if name == value {
			return DocumentType(i), nil
		}
	}
	return DocumentTypeGeneralDocument, fmt.Errorf("unknown document type %q", value)
}

type Complexity int

const (
	ComplexitySimple Complexity = iota
	ComplexityModerate
	ComplexityComplex
	ComplexityHighlyTechnical
	ComplexitySpecialized
)

var complexityNames = [...]string{
	ComplexitySimple:          "simple",
	ComplexityModerate:        "moderate",
	ComplexityComplex:         "complex",
	ComplexityHighlyTechnical: "highly_technical",
	ComplexitySpecialized:     "specialized",
}

func (c Complexity) String() string {
	if c < 0 || int(c) >= len(complexityNames) {
		return complexityNames[ComplexitySimple]
	}
	return complexityNames[c]
}

func (c Complexity) Title() string {
	return titleWords(c.String())
}

func (c Complexity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Complexity) UnmarshalText(text []byte) error {
	for i, name := range complexityNames {
		if name == string(text) {
			*c = Complexity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown complexity level %q", string(text))
}

type EntityKind string

const (
	EntityDate  EntityKind = "DATE"
	EntityMoney EntityKind = "MONEY"
	EntityOrg   EntityKind = "ORG"
)

type Entity struct {
	Kind EntityKind
	Text string
}

func (e Entity) String() string {
	return string(e.Kind) + ":" + e.Text
}

func (e Entity) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Entity) UnmarshalText(text []byte) error {
	kind, value, ok := strings.Cut(string(text), ":")
	if !ok {
		return fmt.Errorf("malformed entity %q", string(text))
	}
	switch EntityKind(kind) {
	case EntityDate, EntityMoney, EntityOrg:
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}
	e.Kind = EntityKind(kind)
	e.Text = value
	return nil
}

// Structure holds the counters gathered while walking a document.
type Structure struct {
	Pages      int      `json:"pages"`
	Paragraphs int      `json:"paragraphs"`
	Headings   int      `json:"headings"`
	Tables     int      `json:"tables"`
	TablePages int      `json:"table_pages,omitempty"`
	Images     int      `json:"images,omitempty"`
	Fonts      []string `json:"fonts,omitempty"`
	NonLatin   bool     `json:"non_latin,omitempty"`
}

type DocumentMetadata struct {
	FileType          string       `json:"file_type"`
	EstimatedPages    int          `json:"estimated_pages"`
	WordCount         int          `json:"word_count"`
	LanguagePrimary   string       `json:"language_primary"`
	LanguagesDetected []string     `json:"languages_detected"`
	DocumentType      DocumentType `json:"document_type"`
	Complexity        Complexity   `json:"complexity_level"`
	KeyTopics         []string     `json:"key_topics"`
	Entities          []Entity     `json:"entities_detected"`
	Structure         Structure    `json:"structure_analysis"`
	Confidence        float64      `json:"confidence_score"`
}

func titleWords(snake string) string {
	parts := strings.Split(snake, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
