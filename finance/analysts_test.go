package finance

import "testing"

const analystsPage = `<html><body>
<table>
  <thead><tr><th><span>Earnings Estimate</span></th><th>Current Qtr.</th><th>Next Qtr.</th></tr></thead>
  <tbody><tr><td><span>Avg. Estimate</span></td><td>1.42</td><td>1.55</td></tr></tbody>
</table>
<table>
  <thead><tr><th>Revenue Estimate</th><th>Current Qtr.</th><th>Next Qtr.</th><th>Current Year</th></tr></thead>
  <tbody>
    <tr><td>No. of Analysts</td><td>25</td><td>24</td><td>37</td></tr>
    <tr><td>Avg. Estimate</td><td>61.44B</td><td>52.88B</td><td>263.74B</td></tr>
  </tbody>
</table>
<table>
  <thead><tr><th>Earnings Estimate</th><th>Current Year</th></tr></thead>
  <tbody>
    <tr><td>Avg. Estimate</td><td>11.42</td></tr>
    <tr><td>Low Estimate</td><td>10.90</td><td>extra</td></tr>
  </tbody>
</table>
</body></html>`

func TestExtractAnalystTable(t *testing.T) {
	doc := parse(t, `<table>
<thead><tr><th>Earnings Estimate</th><th>Current Qtr.</th><th>Next Qtr.</th></tr></thead>
<tbody><tr><td>Avg. Estimate</td><td>1.42</td><td>1.55</td></tr></tbody>
</table>`)

	table := ExtractAnalystTable(doc, "Earnings Estimate")

	row, ok := table["Avg. Estimate"]
	if !ok || len(table) != 1 {
		t.Fatalf("expected one row keyed Avg. Estimate, got %v", table)
	}
	if row["Current Qtr."] != "1.42" || row["Next Qtr."] != "1.55" || len(row) != 2 {
		t.Errorf("unexpected row: %v", row)
	}
}

func TestExtractAnalystTableAccumulates(t *testing.T) {
	doc := parse(t, analystsPage)

	table := ExtractAnalystTable(doc, "Earnings Estimate")

	// the later table's Avg. Estimate replaces the earlier row
	avg := table["Avg. Estimate"]
	if len(avg) != 1 || avg["Current Year"] != "11.42" {
		t.Errorf("expected later table to overwrite Avg. Estimate, got %v", avg)
	}
	low := table["Low Estimate"]
	if len(low) != 1 || low["Current Year"] != "10.90" {
		t.Errorf("expected extra cells to be ignored, got %v", low)
	}

	revenue := ExtractAnalystTable(doc, "Revenue Estimate")
	if revenue["No. of Analysts"]["Current Year"] != "37" {
		t.Errorf("unexpected revenue table: %v", revenue)
	}
	if _, ok := revenue["Avg. Estimate"]["Current Year"]; !ok {
		t.Errorf("expected Avg. Estimate row in revenue table: %v", revenue)
	}
}

func TestExtractAnalystTableNoMatch(t *testing.T) {
	doc := parse(t, analystsPage)

	table := ExtractAnalystTable(doc, "EPS Trend")
	if table == nil || len(table) != 0 {
		t.Errorf("expected empty non-nil table, got %v", table)
	}
}

func TestExtractAnalystTableWrappedLabel(t *testing.T) {
	doc := parse(t, `<table>
<thead><tr><th>Earnings
      Estimate</th><th>Current Qtr.</th></tr></thead>
<tbody><tr><td>Avg. Estimate</td><td>1.42</td></tr></tbody>
</table>`)

	table := ExtractAnalystTable(doc, "Earnings Estimate")
	if table["Avg. Estimate"]["Current Qtr."] != "1.42" {
		t.Errorf("expected wrapped header label to match, got %v", table)
	}
}
