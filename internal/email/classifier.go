// Package email classifies bank notification emails into transactions using
// the same heuristics as the statement pipeline: an amount gate, a keyword
// gate and a direction decision. No email leaves the process; only the
// classification result does.
package email

import (
	"strings"
	"unicode/utf8"

	"fintastic/extract/internal/extract"
	"fintastic/extract/internal/logging"
	"fintastic/extract/internal/models"
	"fintastic/extract/internal/vocab"
)

// Message is one fetched email, reduced to the fields classification needs.
type Message struct {
	ID      string
	Subject string
	Body    string
}

// Classifier applies the two-gate heuristic to messages. Both gates must
// pass: an email without an extractable amount is never a transaction, and an
// email with an amount but no transaction keyword (a coupon, a balance
// statement) is rejected too.
type Classifier struct {
	amounts *extract.AmountExtractor
	vocab   *vocab.Vocabulary
	log     logging.Logger
}

// NewClassifier creates a Classifier. A nil vocabulary uses the built-in
// defaults.
func NewClassifier(v *vocab.Vocabulary, logger logging.Logger) (*Classifier, error) {
	if v == nil {
		v = vocab.Default()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	amounts, err := extract.NewAmountExtractor(nil)
	if err != nil {
		return nil, err
	}
	return &Classifier{amounts: amounts, vocab: v, log: logger}, nil
}

// Classify runs the gates over one message. The second return value is false
// when the message is not a transaction. The transaction text is the subject,
// capped; the body only feeds extraction and matching.
func (c *Classifier) Classify(msg Message) (models.EmailTransaction, bool) {
	subject := strings.TrimSpace(msg.Subject)
	msgLog := c.log.WithField(logging.FieldSubject, subject)

	if subject == "" {
		msgLog.WithField(logging.FieldReason, "empty subject").Debug("Email rejected")
		return models.EmailTransaction{}, false
	}

	combined := strings.ToLower(msg.Subject + " " + msg.Body)

	amount, ok := c.amounts.Extract(combined)
	if !ok {
		msgLog.WithField(logging.FieldReason, "no amount").Debug("Email rejected")
		return models.EmailTransaction{}, false
	}

	keyword, ok := firstKeyword(combined, c.vocab.TransactionKeywords)
	if !ok {
		msgLog.WithField(logging.FieldReason, "no transaction keyword").Debug("Email rejected")
		return models.EmailTransaction{}, false
	}

	txType := models.TypeExpense
	if incomeKw, ok := firstKeyword(combined, c.vocab.IncomeKeywords); ok {
		keyword = incomeKw
		txType = models.TypeIncome
	}

	msgLog.WithFields(
		logging.Field{Key: logging.FieldAmount, Value: amount.String()},
		logging.Field{Key: logging.FieldType, Value: txType},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
	).Debug("Email classified as transaction")

	return models.EmailTransaction{
		GmailMessageID: msg.ID,
		Amount:         amount,
		Text:           capRunes(subject, models.MaxEmailSubjectLength),
		Type:           txType,
	}, true
}

// ClassifyAll classifies a batch of messages, dropping non-transactions.
func (c *Classifier) ClassifyAll(msgs []Message) []models.EmailTransaction {
	var out []models.EmailTransaction
	for _, msg := range msgs {
		if tx, ok := c.Classify(msg); ok {
			out = append(out, tx)
		}
	}
	c.log.WithFields(
		logging.Field{Key: logging.FieldCount, Value: len(out)},
		logging.Field{Key: "scanned", Value: len(msgs)},
	).Info("Email batch classified")
	return out
}

func firstKeyword(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func capRunes(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max])
}
