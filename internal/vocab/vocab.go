// Package vocab manages the keyword vocabulary that drives the heuristic
// classifiers. The lists are configuration data, not logic: they load from a
// YAML file so they can be swapped per locale or per test, with baked-in
// defaults matching the Indian bank/UPI email formats the pipeline was built
// against.
package vocab

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// Vocabulary holds every keyword list the pipeline consults. All matching is
// case-insensitive substring matching, so entries are stored lower-case.
type Vocabulary struct {
	// TransactionKeywords gate the email classifier: an email with an amount
	// but none of these is not a transaction.
	TransactionKeywords []string `yaml:"transaction_keywords"`

	// IncomeKeywords flip an email's direction to income; absent any, the
	// email defaults to expense.
	IncomeKeywords []string `yaml:"income_keywords"`

	// ExpenseLineKeywords flip a statement text-fallback line to expense;
	// absent any, the line defaults to income.
	ExpenseLineKeywords []string `yaml:"expense_line_keywords"`

	// GigCategories flag irregular income in stored transactions.
	GigCategories []string `yaml:"gig_categories"`
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		TransactionKeywords: []string{
			"payment", "paid", "upi", "imps", "neft",
			"debited", "credited", "txn", "transaction", "transfer",
			"sent", "received", "successful", "failed", "withdrawal",
			"deposit", "reversal", "refund", "purchase", "order",
			"pos", "atm", "card", "vpa", "rtgs",
		},
		IncomeKeywords: []string{
			"credited", "deposit", "received", "refund", "reversal",
			"transfer from", "salary", "income",
		},
		ExpenseLineKeywords: []string{
			"debited", "withdrawal", "paid", "payment", "transfer", "atm", "pos",
		},
		GigCategories: []string{
			"freelance", "gig", "contractor", "self-employed",
			"consulting", "commission", "tips", "side hustle",
		},
	}
}

// Load reads a vocabulary YAML file. Lists missing from the file keep their
// defaults, so a file can override just one list. An empty path returns the
// defaults unchanged.
func Load(path string) (*Vocabulary, error) {
	v := Default()
	if path == "" {
		return v, nil
	}

	resolved, err := findConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("vocabulary file %s not found: %w", path, err)
	}

	data, err := os.ReadFile(resolved) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("error reading vocabulary file: %w", err)
	}

	var loaded Vocabulary
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing vocabulary file %s: %w", resolved, err)
	}

	if len(loaded.TransactionKeywords) > 0 {
		v.TransactionKeywords = loaded.TransactionKeywords
	}
	if len(loaded.IncomeKeywords) > 0 {
		v.IncomeKeywords = loaded.IncomeKeywords
	}
	if len(loaded.ExpenseLineKeywords) > 0 {
		v.ExpenseLineKeywords = loaded.ExpenseLineKeywords
	}
	if len(loaded.GigCategories) > 0 {
		v.GigCategories = loaded.GigCategories
	}

	log.WithField(logging.FieldFile, resolved).Debug("Loaded vocabulary file")
	return v, nil
}

// Save writes the vocabulary to a YAML file, creating parent directories as
// needed.
func Save(v *Vocabulary, path string) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshaling vocabulary: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, models.PermissionConfigFile)
}

// findConfigFile looks for a configuration file in standard locations:
// as given, under ./config/, and under ~/.config/fintastic-extract/.
func findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "fintastic-extract", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}
