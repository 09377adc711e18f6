// Package export implements the note sharing format: a JSON document
// carrying one note's text and its generated questions, portable across
// users and installs.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidFormat is returned when an import file is not valid JSON or
// does not match the share-format schema.
var ErrInvalidFormat = errors.New("invalid export file format")

// File is the root of the share format.
type File struct {
	Title     string     `json:"Title"`
	Content   string     `json:"Content"`
	Questions []Question `json:"Questions"`
}

// Question mirrors a generated question inside a share file.
type Question struct {
	Text         string   `json:"Text"`
	QuestionType string   `json:"QuestionType"`
	Answers      []Answer `json:"Answers"`
}

// Answer mirrors one answer option inside a share file.
type Answer struct {
	Text      string `json:"Text"`
	IsCorrect bool   `json:"IsCorrect"`
}

const schemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["Title", "Content"],
	"properties": {
		"Title": {"type": "string", "minLength": 1, "maxLength": 100},
		"Content": {"type": "string"},
		"Questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["Text", "QuestionType", "Answers"],
				"properties": {
					"Text": {"type": "string", "minLength": 1},
					"QuestionType": {
						"type": "string",
						"enum": ["multiple_choice", "true_false", "short_answer"]
					},
					"Answers": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["Text", "IsCorrect"],
							"properties": {
								"Text": {"type": "string", "minLength": 1},
								"IsCorrect": {"type": "boolean"}
							}
						}
					}
				}
			}
		}
	}
}`

var fileSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("parse export schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("memoriter://export.schema.json", doc); err != nil {
		panic(fmt.Sprintf("add export schema: %v", err))
	}

	sch, err := c.Compile("memoriter://export.schema.json")
	if err != nil {
		panic(fmt.Sprintf("compile export schema: %v", err))
	}
	return sch
}
