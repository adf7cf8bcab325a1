package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	NanoidSize     = 21
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func NanoID() string {
	return gonanoid.MustGenerate(nanoidAlphabet, NanoidSize)
}
