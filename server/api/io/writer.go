package io

import (
	"bufio"
	"bytes"
)

// FileWriter abstracts writing whole files, so that exports can be tested without touching the disk.
type FileWriter interface {
	WriteToFile(string, []byte) error
}

// BufferWriter accumulates replies in memory before they are sent to a connection.
type BufferWriter struct {
	b *bytes.Buffer
	w *bufio.Writer
}

func NewBufferWriter() *BufferWriter {
	var b bytes.Buffer
	return &BufferWriter{&b, bufio.NewWriter(&b)}
}

func (bw *BufferWriter) Write(p []byte) (nn int, err error) {
	return bw.w.Write(p)
}

func (bw *BufferWriter) String() string {
	bw.w.Flush()
	return bw.b.String()
}

// Len returns the number of bytes written so far.
func (bw *BufferWriter) Len() int {
	bw.w.Flush()
	return bw.b.Len()
}
