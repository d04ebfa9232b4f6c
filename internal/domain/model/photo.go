package model

// ギャラリーの写真1枚
type Photo struct {
	Filepath    string `json:"filepath"`
	WebviewPath string `json:"webviewPath,omitempty"`
}
