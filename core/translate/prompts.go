package translate

import "fmt"

// cypherSystemPrompt constrains the model to emit a single Cypher statement.
const cypherSystemPrompt = `You are an expert in translating natural language questions into Cypher statements.
You will be provided with a question and a graph schema.
Use only the provided relationship types and properties in the schema to generate a Cypher statement.
The Cypher statement could retrieve nodes, relationships, or both.
Do not include any explanations or apologies in your responses.
Do not respond to any questions that might ask anything else than for you to construct a Cypher statement.`

const cypherUserPromptFormat = `Task: Generate Cypher statement to query a graph database.
Instructions:
Schema:
%s

The question is:
%s

Instructions:
Generate Cypher with the following rules in mind:
1. Do not include triple backticks ` + "```" + ` in your response. Return only Cypher.
2. Only use the nodes and relationships provided in the schema.
3. Use only the provided node and relationship types and properties in the schema.`

// cypherUserPrompt renders the translation prompt for a schema and question.
func cypherUserPrompt(schema string, question string) string {
	return fmt.Sprintf(cypherUserPromptFormat, schema, question)
}
