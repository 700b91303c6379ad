package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
)

// commandFor maps page paths to the REPL command that opens them.
var commandFor = map[string]string{
	router.PathSelf:      "self",
	router.PathScan:      "scan",
	router.PathHospitals: "hospitals",
	router.PathCure:      "cure",
	router.PathHistory:   "history",
}

func (a *App) Home(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathHome); err != nil {
		return err
	}
	return a.showHome()
}

func (a *App) showHome() error {
	a.waitFor(a.home.Ready())

	a.println("==", a.home.Title(), "==")
	a.println(a.home.Welcome())
	for _, m := range a.home.Menu() {
		a.printf("  %-10s %s\n", commandFor[m.Path], m.Label)
	}
	return nil
}

// SelfAssessment asks every question (empty answer keeps the current
// score) and submits.
func (a *App) SelfAssessment(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathSelf); err != nil {
		return err
	}
	a.waitFor(a.self.Ready())
	a.println("==", a.self.Title(), "==")

	for i, ans := range a.self.Input() {
		text, ok, err := GetField(a.reader, ans.Question+" (0-3)", ans.Score, a.out)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			a.println("Not a number, keeping", ans.Score)
			continue
		}
		if err := a.self.SetScore(i, v); err != nil {
			a.printErr(err)
			return err
		}
	}

	res, err := a.self.Submit(ctx)
	if err != nil {
		a.printErr(err)
		a.self.Acknowledge()
		return err
	}

	a.printf("Predicted condition: %s (confidence %.0f%%)\n", res.PredictedCondition, res.Confidence*100)
	return nil
}

// Scan collects the patient details and the X-ray file, submits them and
// offers to save the annotated image.
func (a *App) Scan(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathScan); err != nil {
		return err
	}
	a.waitFor(a.scan.Ready())
	a.println("==", a.scan.Title(), "==")
	if p := a.scan.Precautions(); p != "" {
		a.println(p)
	}

	if err := a.fillScanForm(); err != nil {
		a.printErr(err)
		return err
	}

	res, err := a.scan.Submit(ctx)
	if err != nil {
		a.printErr(err)
		a.scan.Acknowledge()
		return err
	}

	a.printf("Prediction: %s (confidence %.0f%%, model %s)\n", res.Prediction, res.Confidence*100, res.Model)

	if res.AnnotatedImageB64 == "" {
		return nil
	}
	dest, err := getSimpleText(a.reader, "Save annotated image to (empty for default, '-' to skip)", a.out)
	if err != nil || dest == "-" {
		return err
	}
	path, err := a.scan.SaveAnnotated(dest)
	if err != nil {
		a.printErr(err)
		return err
	}
	a.println("Annotated image saved to", path)
	return nil
}

func (a *App) fillScanForm() error {
	in := a.scan.Input()

	name, ok, err := GetField(a.reader, "Patient name", in.Name, a.out)
	if err != nil {
		return err
	}
	if ok {
		if err := a.scan.SetName(name); err != nil {
			return err
		}
	}

	age, ok, err := GetField(a.reader, "Age", in.AgeField(), a.out)
	if err != nil {
		return err
	}
	if ok {
		v, err := strconv.Atoi(age)
		if err != nil {
			return models.ErrInvalidAge
		}
		if err := a.scan.SetAge(v); err != nil {
			return err
		}
	}

	gender, ok, err := GetField(a.reader, "Gender (male/female/other)", in.Gender, a.out)
	if err != nil {
		return err
	}
	if ok {
		if err := a.scan.SetGender(gender); err != nil {
			return err
		}
	}

	cond, ok, err := GetField(a.reader, "Medical condition", in.MedicalCondition, a.out)
	if err != nil {
		return err
	}
	if ok {
		if err := a.scan.SetMedicalCondition(cond); err != nil {
			return err
		}
	}

	current := ""
	if in.Image != nil {
		current = in.Image.Name
	}
	path, ok, err := GetField(a.reader, "Path to chest X-ray JPEG", current, a.out)
	if err != nil || !ok {
		return err
	}
	return a.scan.AttachFile(path)
}

// Cure shows the symptom entries, reads additional "date score" lines and
// submits the whole list.
func (a *App) Cure(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathCure); err != nil {
		return err
	}
	a.waitFor(a.cure.Ready())
	a.println("==", a.cure.Title(), "==")

	for i, e := range a.cure.Input() {
		a.printf("  %d. %s  %g\n", i+1, e.Date, e.Score)
	}

	lines, err := getMultiline(a.reader, "Add entries as 'YYYY-MM-DD score', one per line", a.out)
	if err != nil {
		return err
	}
	for _, line := range lines {
		date, score, err := parseSymptomLine(line)
		if err != nil {
			a.println("Skipping", strconv.Quote(line)+":", err)
			continue
		}
		idx, err := a.cure.Add()
		if err != nil {
			return err
		}
		if err := a.cure.Update(idx, date, score); err != nil {
			return err
		}
	}

	res, err := a.cure.Submit(ctx)
	if err != nil {
		a.printErr(err)
		a.cure.Acknowledge()
		return err
	}

	a.printf("Evaluation: %s (score change %+g)\n", res.Evaluation, res.ScoreChange)
	return nil
}

func parseSymptomLine(line string) (string, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return "", 0, fmt.Errorf("expected a date and a score")
	}
	score, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid score: %w", err)
	}
	return fields[0], score, nil
}

// History opens the history page and prints the list once it is loaded.
func (a *App) History(ctx context.Context) error {
	if err := a.navigate(ctx, router.PathHistory); err != nil {
		return err
	}
	a.waitFor(a.history.Ready())
	a.waitFor(a.history.Loaded())
	a.printHistory()
	return nil
}

// Delete removes a record and prints the re-fetched list.
func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		a.println("Usage: delete <id>")
		return nil
	}
	if path, _ := a.router.Current(); path != router.PathHistory {
		if err := a.navigate(ctx, router.PathHistory); err != nil {
			return err
		}
		a.waitFor(a.history.Loaded())
	}

	err := a.history.Delete(ctx, id)
	if err != nil {
		a.printErr(err)
	} else {
		a.println("Deleted", id)
	}
	a.printHistory()
	return err
}

func (a *App) printHistory() {
	a.println("==", a.history.Title(), "==")
	items := a.history.Items()
	if len(items) == 0 {
		a.println("  (no records)")
		return
	}
	for _, it := range items {
		a.printf("  %-12s %-16s %s\n", it.ID, it.Type, string(it.Data))
	}
}

// Hospitals prints a map search link; an optional "lat,lng" position is
// asked for.
func (a *App) Hospitals(ctx context.Context, query string) error {
	if err := a.navigate(ctx, router.PathHospitals); err != nil {
		return err
	}
	a.waitFor(a.hospitals.Ready())
	a.println("==", a.hospitals.Title(), "==")

	a.hospitals.SetQuery(query)

	pos, err := getSimpleText(a.reader, "Your position as lat,lng (empty to skip)", a.out)
	if err != nil {
		return err
	}
	a.hospitals.ClearPosition()
	if pos != "" {
		lat, lng, err := parsePosition(pos)
		if err == nil {
			err = a.hospitals.SetPosition(lat, lng)
		}
		if err != nil {
			a.printErr(err)
		}
	}

	a.printf("%s: %s\n", a.hospitals.DirectionsLabel(), a.hospitals.MapURL())
	return nil
}

func parsePosition(s string) (float64, float64, error) {
	latS, lngS, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected lat,lng")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngS), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude: %w", err)
	}
	return lat, lng, nil
}
