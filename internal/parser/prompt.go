package parser

// BuildBillPrompt returns the extraction prompt for carrier bill documents.
// The contract pins where each field comes from so the model cannot
// improvise: totals from the summary table's totals row, month/year from the
// issue date only, and a strict JSON-only response.
func BuildBillPrompt(ownerTable, text string) string {
	return `You are a parser for cellphone carrier bills. The input is noisy text extracted from a PDF.

Follow these instructions exactly:

1. Locate the bill summary table. Its columns are: line type, plan, equipment, services, one-time charges, total.
2. From that table's totals row, read "plan", "equipment", "one_time_charges" and "total_due" as numbers.
3. Read "month" and "year" only from the bill issue date. Never take them from the service period, the due date, or any other date in the document.
4. Enumerate the rows whose line type is a phone number, excluding any account row and any totals row. Call the number of such rows N.
5. For each phone row:
   - "equipment_amount" and "one_time_amount" are that row's own column values. A dash or a blank column is 0.0, even if the row says "Included" elsewhere.
   - "line_amount" is the total plan amount divided equally by N. Ignore whatever the row's own plan column shows.
   - "owner" comes from this phone number to owner mapping:
` + ownerTable + `

6. Return ONLY a single JSON object matching this schema exactly, with no markdown formatting, no code fences, and no explanation:
{
  "month": "string",
  "year": "string",
  "total_due": 0.0,
  "plan": 0.0,
  "equipment": 0.0,
  "one_time_charges": 0.0,
  "line_charges": [
    {"phone": "xxx-xxx-xxxx", "owner": "string", "line_amount": 0.0, "equipment_amount": 0.0, "one_time_amount": 0.0}
  ]
}

Input text:
` + text
}
