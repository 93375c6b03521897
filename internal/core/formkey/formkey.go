// Package formkey knows the key shapes form data records are stored under
package formkey

import (
	"fmt"
	"regexp"
	"strings"
)

// Key formats; every %s is an identifier segment
const (
	TaskFormat                 = "process/%s/task/%s"
	StartFormFormat            = "process-definition/%s/start-form/%s"
	ExternalSystemFormat       = "process-definition/%s/external-system/%s"
	SystemSignatureFormat      = "lowcode_%s_%s_system_signature_ceph_key"
	BatchSystemSignatureFormat = "lowcode_%s_system_signature_ceph_key_%s"
)

// Formats lists the built-in shapes in matching order
func Formats() []string {
	return []string{
		TaskFormat,
		StartFormFormat,
		ExternalSystemFormat,
		SystemSignatureFormat,
		BatchSystemSignatureFormat,
	}
}

// Task is the key of a user task submission
func Task(processInstanceID, taskDefinitionKey string) string {
	return fmt.Sprintf(TaskFormat, processInstanceID, taskDefinitionKey)
}

// StartForm is the key of a start form submission
func StartForm(processDefinitionKey, id string) string {
	return fmt.Sprintf(StartFormFormat, processDefinitionKey, id)
}

// ExternalSystem is the key of data posted by an external system to start a process
func ExternalSystem(processDefinitionKey, id string) string {
	return fmt.Sprintf(ExternalSystemFormat, processDefinitionKey, id)
}

// SystemSignature is the key of a single system signature document
func SystemSignature(processInstanceID, id string) string {
	return fmt.Sprintf(SystemSignatureFormat, processInstanceID, id)
}

// BatchSystemSignature is the key of the index-th signature in a batch
func BatchSystemSignature(processInstanceID string, index int) string {
	return fmt.Sprintf(BatchSystemSignatureFormat, processInstanceID, fmt.Sprint(index))
}

// Pattern turns a key format into a regular expression source: literal parts
// are quoted and every %s becomes a (.*) group
func Pattern(format string) string {
	parts := strings.Split(format, "%s")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(parts, "(.*)")
}

// Patterns returns Pattern for every built-in format
func Patterns() []string {
	fs := Formats()
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = Pattern(f)
	}
	return out
}
