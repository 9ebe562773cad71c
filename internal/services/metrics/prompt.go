package metrics

import "strings"

// extractionInstructions is sent ahead of the caller's text on the first call.
const extractionInstructions = `You are an information extraction engine. Extract data from the provided text and return ONLY valid JSON that conforms EXACTLY to this schema:

    {
      "income": number,               // required, > 0, a whole number
      "net_income": number,           // required, may be negative
      "emissions": number | null,     // optional, >= 0 when present, metric tons
      "water_usage": number | null,   // optional, >= 0 when present, liters
      "quarter": string | null        // null unless a quarter label is stated
    }

Hard rules:
- Use ONLY information explicitly stated in the text. Do NOT guess or infer.
- If a value is missing, unclear, or not explicitly stated, return null.
- Never use example numbers from this prompt. Examples are illustrative only and MUST NOT be copied into output.
- Output JSON only: no commentary, no extra keys, no code fences.

Number parsing:
- Convert compact or human-written numbers to raw numbers:
  - "12.5M" -> 12500000
  - "450k" -> 450000
  - "1.2 million" -> 1200000
- Treat currency words and symbols as noise unless part of the number.
- All numeric outputs must be JSON numbers, not strings.

Field-specific extraction rules:
1) income:
- Extract the amount describing total income (e.g. "Total income hit 12.5M euros").
- If several income figures exist, pick the one most directly tied to "income" or "total income".

2) net_income:
- Extract the amount describing the net gain or loss (e.g. "net gain of only 1.2M").
- If the text says "net loss", output a negative number.
- If several net figures exist, choose the one explicitly labeled net income, gain or loss.

3) emissions:
- Look for "Scope 1", "Scope 2", "Scope 1 and 2", "Scope 1 & 2", "Scope I/II" and CO2e phrasing.
- Also accept wording like "emissions to X metric tons", "tCO2e" or "tons of CO2 equivalent".
- Output the value in metric tons; do not convert units unless the text gives a clear conversion.
- If emissions are mentioned without a number, return null.

4) water_usage:
- Extract water usage only if a number is explicitly stated.
- If the text says it is not finalized or only gives expectations or comparisons (e.g. "expected to be lower than Q3"), return null.

5) quarter:
- Copy the quarter label EXACTLY as written.
- Accept formats like "Q4", "Q4 2024" or "quarter ended Q4".
- If no year is present, keep only what appears (e.g. "Q4"); never add a year.
- If no quarter label is present, return null.

Now extract the fields from this text:
`

// correctionInstructions follows the rejected response on the corrective call.
const correctionInstructions = "The response does not conform to the expected schema. " +
	"Please correct it and return valid JSON that matches the schema exactly. " +
	"In case of any missing values, use null. " +
	"Do not include any commentary or extra fields, and ensure all numeric values are numbers, not strings."

// BuildPrompt returns the extraction prompt with text appended verbatim.
func BuildPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(extractionInstructions) + len(text))
	b.WriteString(extractionInstructions)
	b.WriteString(text)
	return b.String()
}

// BuildCorrectionPrompt asks the model to repair its previous, rejected response.
// previous is embedded exactly as received.
func BuildCorrectionPrompt(previous string) string {
	return "Previous response: " + previous + "\n\n" + correctionInstructions
}
