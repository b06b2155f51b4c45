package domain

type CopyItem struct {
	Source     SourceFile
	TargetName string
	TargetPath string
	Ordinal    int
}

type Failure struct {
	SourcePath string
	Err        error
}

type Report struct {
	RunID     string
	SourceDir string
	TargetDir string
	DryRun    bool
	Total     int
	Items     []CopyItem
	Failures  []Failure
	Warnings  []string
}

func (r Report) Copied() int {
	return len(r.Items)
}

func (r Report) Succeeded() bool {
	return len(r.Failures) == 0
}
