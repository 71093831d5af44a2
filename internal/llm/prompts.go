package llm

import (
	"fmt"
	"strings"

	"github.com/alnah/go-recipefmt/recipe"
)

const recipeSchema = `{
  "title": "string",
  "description": "string, optional",
  "ingredients": [{"quantity": number or null, "unit": "string", "name": "string", "note": "string", "group": "string"}],
  "instructions": [{"text": "string", "group": "string"}],
  "notes": "string, optional",
  "source": "string, optional",
  "tips": ["string"]
}`

const extractSystem = `You convert recipes into JSON. Reply with a single JSON object and nothing else.
The object must follow this shape:
` + recipeSchema + `
Rules:
- Convert as literally as possible. Do not change units, amounts, ingredients or steps.
- quantity is a number (0.5, not "1/2"); use null when the line has no amount.
- unit is the measuring unit as written, or empty. name is the ingredient. note holds preparation details written after a comma.
- If the source splits ingredients or steps into sections, put the section name in group; otherwise leave group empty.
- Leave out reviews, nutrition facts and anything that is not part of the recipe.`

const tipsRule = `- Collect cooking tips and serving suggestions from the text into tips.`

const noTipsRule = `- Leave tips empty.`

const assignSystem = `You group the ingredients and instructions of a recipe into named components such as "Cake" or "Frosting".
Reply with a single JSON object and nothing else:
{"ingredients": [label or null, ...], "instructions": [label or null, ...]}
Rules:
- Return exactly one entry per ingredient and per instruction, in the given order.
- Use the same label spelling for an ingredient group and the instructions that make it.
- Instructions that combine components (assembly, serving) may use their own label.
- Use null for items that belong to no component. If the recipe has a single component, use null everywhere.`

const reviseSystem = `You revise recipes stored as JSON. Apply the requested changes and reply with the complete revised recipe as a single JSON object and nothing else.
Keep the same fields as the input: title, description, ingredients, instructions, notes, source, tips. Do not add other fields.
Ingredients are objects with quantity (number or null), unit, name, note and group. Instructions are objects with text and group.`

func extractPrompt(text string, tips bool) Request {
	rule := noTipsRule
	if tips {
		rule = tipsRule
	}
	return Request{
		System: extractSystem + "\n" + rule,
		User:   "The recipe is:\n\n" + strings.TrimSpace(text),
		JSON:   true,
	}
}

func assignPrompt(r *recipe.Recipe, directive string) Request {
	var b strings.Builder
	if d := strings.TrimSpace(directive); d != "" {
		fmt.Fprintf(&b, "Grouping hint: %s\n\n", d)
	}
	fmt.Fprintf(&b, "Recipe: %s\n\nIngredients:\n", r.Title)
	for i, ing := range r.Ingredients {
		fmt.Fprintf(&b, "%d. %s\n", i, ing.Line())
	}
	b.WriteString("\nInstructions:\n")
	for i, ins := range r.Instructions {
		fmt.Fprintf(&b, "%d. %s\n", i, ins.Text)
	}
	return Request{System: assignSystem, User: b.String(), JSON: true}
}

func revisePrompt(current []byte, directive string) Request {
	return Request{
		System: reviseSystem,
		User:   "The revisions are:\n" + strings.TrimSpace(directive) + "\n\nThe recipe is:\n" + string(current),
		JSON:   true,
	}
}
