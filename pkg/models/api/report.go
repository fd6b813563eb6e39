package api

type Report struct {
	Name     string   `json:"name"`
	FileName string   `json:"file_name"`
	Model    string   `json:"model"`
	Fields   []string `json:"fields"`
	Headers  []string `json:"headers"`
}
