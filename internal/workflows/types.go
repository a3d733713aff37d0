package workflows

const (
	ImportWorkflowID     = "corpus-import"
	QueryGetImportStatus = "GetImportStatus"

	StatusRunning  = "running"
	StatusImported = "imported"
	StatusSkipped  = "skipped"
	StatusFailed   = "failed"
)

type CorpusImportInput struct {
	MetadataPath string `json:"metadata_path"`
	ChunksPath   string `json:"chunks_path"`
	Trigger      string `json:"trigger"`
}

type CorpusImportStatus struct {
	State   string `json:"state"`
	Written int    `json:"written"`
	Failed  int    `json:"failed"`
}
