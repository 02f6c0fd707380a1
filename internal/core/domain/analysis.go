package domain

// AnalysisReport is recomputed per request from document text and metadata.
type AnalysisReport struct {
	Metadata         DocumentMetadata        `json:"document_metadata"`
	ContentStructure ContentStructure        `json:"content_structure"`
	Semantic         SemanticAnalysis        `json:"semantic_analysis"`
	KnowledgeDomains []KnowledgeDomain       `json:"knowledge_domains"`
	CrossReferences  []CrossReference        `json:"cross_references"`
	DataPatterns     []DataPattern           `json:"data_patterns"`
	Relationships    ContextualRelationships `json:"contextual_relationships"`
	Inferences       []InferenceOpportunity  `json:"inference_opportunities"`
}

type ContentStructure struct {
	Sections          []Section        `json:"sections"`
	Lists             []ListItem       `json:"lists"`
	Tables            []TableIndicator `json:"tables"`
	HierarchicalDepth int              `json:"hierarchical_depth"`
}

type Section struct {
	Title      string `json:"title"`
	LineNumber int    `json:"line_number"`
	Preview    string `json:"content_preview"`
}

type ListItem struct {
	Ordered bool   `json:"ordered"`
	Content string `json:"content"`
	Section string `json:"section,omitempty"`
}

type TableIndicator struct {
	Indicator  string `json:"indicator"`
	LineNumber int    `json:"line_number"`
	Section    string `json:"section,omitempty"`
}

type SemanticAnalysis struct {
	KeyConcepts []Concept `json:"key_concepts"`
	Density     float64   `json:"semantic_density"`
}

type Concept struct {
	Concept  string `json:"concept"`
	Context  string `json:"context"`
	Sentence string `json:"sentence"`
}

type KnowledgeDomain struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type CrossReference struct {
	ReferenceText string `json:"reference_text"`
	Target        string `json:"target"`
	Context       string `json:"context"`
}

type DataPatternType string

const (
	PatternRatePricing DataPatternType = "rate_pricing"
	PatternGradeLevel  DataPatternType = "grade_level"
)

type DataPattern struct {
	Type    DataPatternType `json:"type"`
	Item    string          `json:"item,omitempty"`
	Value   string          `json:"value"`
	Context string          `json:"context"`
}

type ContextualRelationships struct {
	Conditional  []string `json:"conditional"`
	Causal       []string `json:"causal"`
	Temporal     []string `json:"temporal"`
	Hierarchical []string `json:"hierarchical"`
}

type InferenceOpportunity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Confidence  string `json:"confidence"`
}

// StructureSummary is the compact analysis used when the full report is not built.
type StructureSummary struct {
	HasTables       bool     `json:"has_tables"`
	HasPolicies     bool     `json:"has_policies"`
	HasLocations    bool     `json:"has_locations"`
	IsMultilingual  bool     `json:"is_multilingual"`
	PrimaryLanguage string   `json:"primary_language"`
	WordCount       int      `json:"word_count"`
	Confidence      float64  `json:"confidence"`
	DocumentType    string   `json:"document_type"`
	KeyTopics       []string `json:"key_topics"`
	Entities        []Entity `json:"entities"`
}

type SemanticChunk struct {
	Content       string   `json:"content"`
	ChunkType     string   `json:"chunk_type"`
	Importance    float64  `json:"importance_score"`
	Topics        []string `json:"topic_tags"`
	Entities      []Entity `json:"entities"`
	Relationships []string `json:"relationships"`
	ContextWindow string   `json:"context_window"`
}
