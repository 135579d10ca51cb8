package handler

import (
	jsoniter "github.com/json-iterator/go"
)

// json substitui encoding/json nas respostas dos handlers
var json = jsoniter.ConfigCompatibleWithStandardLibrary
