// Package language normalizes the language values users type (codes, English
// names, BCP 47 tags) into canonical codes and display names.
//
// A small set of common languages is indexed up front from golang.org/x/text
// so 3-letter and bibliographic codes work; other values are parsed as tags,
// which keeps regional variants such as "pt-BR" readable in prompts.
package language
