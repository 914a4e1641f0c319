// Package display renders user records for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/healthassist/healthassist/types"
)

const frameWidth = 41

// Renderer formats records with colored labels. Color is dropped
// automatically when the writer is not a terminal or NO_COLOR is set.
type Renderer struct {
	frame    lipgloss.Style
	label    lipgloss.Style
	metric   lipgloss.Style
	nutrient lipgloss.Style
}

// New constructs a Renderer whose color profile is detected from w.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		frame:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		label:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		metric:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		nutrient: r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	}
}

// All prints every record in the given order.
func (r *Renderer) All(w io.Writer, recs []types.UserRecord) {
	fmt.Fprint(w, "\nDisplaying information for all users...\n")
	for _, rec := range recs {
		r.Record(w, rec)
	}
	fmt.Fprint(w, "Done.\n")
}

// One prints a single record found under name.
func (r *Renderer) One(w io.Writer, name string, rec types.UserRecord) {
	fmt.Fprintf(w, "\nDisplaying information for user %s...\n", name)
	r.Record(w, rec)
	fmt.Fprint(w, "Done.\n")
}

// Record prints the measurements and derived metrics of rec.
func (r *Renderer) Record(w io.Writer, rec types.UserRecord) {
	rule := r.frame.Render(strings.Repeat("=", frameWidth))
	bar := r.frame.Render("|")

	row := func(style lipgloss.Style, label, value string) {
		fmt.Fprintf(w, "%s%s %s\n", bar, style.Render(fmt.Sprintf("  %-21s", label+":")), value)
	}
	blank := func() {
		fmt.Fprintln(w, bar)
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, r.frame.Render("|            User: "+rec.Name))
	fmt.Fprintln(w, rule)
	row(r.label, "Gender", string(rec.Gender))
	row(r.label, "Age", fmt.Sprintf("%d years", rec.Age))
	row(r.label, "Weight", num(rec.WeightKg)+" kg")
	row(r.label, "Waist", num(rec.WaistCm)+" cm")
	row(r.label, "Neck", num(rec.NeckCm)+" cm")
	row(r.label, "Height", num(rec.HeightCm)+" cm")
	if rec.IsFemale() {
		row(r.label, "Hips", num(rec.HipCm)+" cm")
	}
	row(r.label, "Lifestyle", string(rec.Lifestyle))
	blank()
	row(r.metric, "Body Fat Percentage", fmt.Sprintf("%s%%, %s", num(rec.BodyFat.Percentage), rec.BodyFat.Group))
	row(r.metric, "Daily Calorie Intake", num(rec.DailyCalories)+" calories")
	blank()
	row(r.nutrient, "Carbohydrates", num(rec.CarbsG)+" grams")
	row(r.nutrient, "Protein", num(rec.ProteinG)+" grams")
	row(r.nutrient, "Fat", num(rec.FatG)+" grams")
	fmt.Fprintf(w, "%s\n\n", rule)
}

// num prints a real with six significant digits.
func num(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
