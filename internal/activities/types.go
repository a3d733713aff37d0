package activities

type ImportCorpusInput struct {
	MetadataPath string `json:"metadata_path"`
	ChunksPath   string `json:"chunks_path"`
	Trigger      string `json:"trigger"`
}

type ImportCorpusOutput struct {
	Written int  `json:"written"`
	Failed  int  `json:"failed"`
	Skipped bool `json:"skipped"`
}
