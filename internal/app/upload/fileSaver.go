package upload

// FileSaver saves the text with the provided object key
type FileSaver interface {
	Save(name string, data []byte, contentType string) error
}
