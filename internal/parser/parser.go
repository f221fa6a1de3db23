package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonexplorer/internal/errors" // Custom errors package
	"github.com/mcncl/jsonexplorer/internal/models"
)

// Parse reads a single JSON document from reader. Object members keep the
// order in which they appear in the input.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes parses a single JSON document held in memory.
func ParseBytes(data []byte) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	if !gjson.ValidBytes(data) {
		return models.IntermediateRepresentation{}, describeInvalid(data)
	}

	root := convert(gjson.ParseBytes(data))
	return models.IntermediateRepresentation{
		Root:        root,
		RootIsArray: models.Classify(root) == models.ClassArray,
	}, nil
}

// convert walks a gjson result in document order.
func convert(result gjson.Result) models.JSONValue {
	switch result.Type {
	case gjson.Null:
		return models.JSONNull{}
	case gjson.True:
		return models.JSONBool(true)
	case gjson.False:
		return models.JSONBool(false)
	case gjson.Number:
		return models.JSONNumber(result.Raw)
	case gjson.String:
		return models.JSONString(result.Str)
	}

	if result.IsArray() {
		arr := models.JSONArray{}
		result.ForEach(func(_, value gjson.Result) bool {
			arr = append(arr, convert(value))
			return true
		})
		return arr
	}

	obj := models.NewJSONObject()
	result.ForEach(func(key, value gjson.Result) bool {
		obj.Set(key.String(), convert(value))
		return true
	})
	return obj
}

// describeInvalid re-reads data with encoding/json to report why gjson
// rejected it.
func describeInvalid(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))

	var first json.RawMessage
	if err := decoder.Decode(&first); err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		if stderrors.Is(err, io.ErrUnexpectedEOF) {
			return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return errors.NewParsingError("failed to decode JSON", err)
	}

	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); err == nil {
		return errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return errors.NewParsingError("invalid trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	return errors.NewParsingError("invalid JSON document", errors.ErrInvalidJSON)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
