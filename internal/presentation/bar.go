package presentation

import (
	"io"

	"github.com/cheggaaa/pb/v3"
)

// Bar renders copy progress as a single terminal progress bar.
type Bar struct {
	Writer io.Writer
	bar    *pb.ProgressBar
}

func (b *Bar) Start(total int) {
	b.bar = pb.Default.New(total)
	if b.Writer != nil {
		b.bar.SetWriter(b.Writer)
	}
	b.bar.Start()
}

func (b *Bar) Increment(name string) {
	if b.bar == nil {
		return
	}
	b.bar.Set("prefix", name+" ")
	b.bar.Increment()
}

func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	b.bar.Set("prefix", "")
	b.bar.Finish()
}
