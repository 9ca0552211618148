// Package export renders fully-loaded cards as CSV, TOML, Markdown or PDF.
// Every renderer is a stateless function over the card.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/lab-annotate/cataloger-api/internal/comment"
	"github.com/lab-annotate/cataloger-api/internal/models"
	"github.com/pelletier/go-toml/v2"
)

// Author renders the card owner's display name.
func Author(card *models.Card) string {
	name := strings.TrimSpace(card.User.FirstName + " " + card.User.LastName)
	if name == "" {
		return card.User.Username
	}
	return name
}

// keyValues returns the populated scalar annotations in render order,
// followed by one indexed entry per gene mod.
func keyValues(card *models.Card) [][2]string {
	var pairs [][2]string

	if card.Organism != nil {
		pairs = append(pairs, [2]string{"organism", card.Organism.Label})
	}
	if card.Sample != nil {
		pairs = append(pairs, [2]string{"sample", card.Sample.Label})
	}
	if card.Process != nil {
		pairs = append(pairs, [2]string{"process", card.Process.Label})
	}
	if card.Method != nil {
		pairs = append(pairs, [2]string{"method", card.Method.Label})
	}
	for i, gm := range card.GeneMods {
		pairs = append(pairs, [2]string{fmt.Sprintf("gene_mod_%d", i), gm.Label})
	}

	return pairs
}

// AsCSV renders the card as comment header lines followed by key,value
// rows.
func AsCSV(card *models.Card) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# title: %s\n", card.Title)
	fmt.Fprintf(&b, "# created: %s\n", card.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "# author: %s\n", Author(card))
	if card.Project != nil {
		fmt.Fprintf(&b, "# project: %s\n", card.Project.Name)
	}
	fmt.Fprintf(&b, "# comment: %s\n", strings.ReplaceAll(card.Comment, "\n", " "))

	w := csv.NewWriter(&b)
	for _, pair := range keyValues(card) {
		if err := w.Write([]string{pair[0], pair[1]}); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	return b.String(), nil
}

// AsMap returns the structured form of the card: the same key/value set as
// the CSV plus the extracted tag set. This is the source for the TOML
// serialization.
func AsMap(card *models.Card) map[string]interface{} {
	out := map[string]interface{}{
		"title":   card.Title,
		"created": card.CreatedAt.Format(time.RFC3339),
		"author":  Author(card),
		"comment": card.Comment,
	}
	if card.Project != nil {
		out["project"] = card.Project.Name
	}
	for _, pair := range keyValues(card) {
		out[pair[0]] = pair[1]
	}
	out["tags"] = comment.ExtractTags(card.Comment)
	return out
}

// AsTOML renders the card's structured map as TOML, prefixed with the
// annotation-file marker line the downstream omero tooling expects.
func AsTOML(card *models.Card) (string, error) {
	encoded, err := toml.Marshal(AsMap(card))
	if err != nil {
		return "", fmt.Errorf("failed to marshal card as toml: %w", err)
	}
	return "# omero annotation file\n" + string(encoded), nil
}

// AsMarkdown renders the card as a small document: title, author, the
// comment with tag markers stripped, a key/value table and the tag list.
func AsMarkdown(card *models.Card) string {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s\n\n", card.Title)
	fmt.Fprintf(&b, "*by %s*\n\n", Author(card))

	sanitized := strings.ReplaceAll(card.Comment, "#", "")
	if strings.TrimSpace(sanitized) != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(sanitized))
	}

	pairs := keyValues(card)
	if card.Project != nil {
		pairs = append([][2]string{{"project", card.Project.Name}}, pairs...)
	}
	if len(pairs) > 0 {
		b.WriteString("| key | value |\n| --- | --- |\n")
		for _, pair := range pairs {
			fmt.Fprintf(&b, "| %s | %s |\n", pair[0], pair[1])
		}
		b.WriteString("\n")
	}

	if tags := comment.ExtractTags(card.Comment); len(tags) > 0 {
		bolded := make([]string, len(tags))
		for i, tag := range tags {
			bolded[i] = "**" + tag + "**"
		}
		b.WriteString(strings.Join(bolded, " ") + "\n")
	}

	return b.String()
}

// Filename builds the attachment filename for a card download.
func Filename(card *models.Card, extension string) string {
	return strings.ReplaceAll(card.Title, " ", "_") + "." + extension
}
