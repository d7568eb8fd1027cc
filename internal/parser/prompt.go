package parser

import "strings"

const postingPromptTemplate = `You are a job posting parser. You will be given the text of a web page that contains the details of a job posting. Extract only the job posting details from that text.

Return a single JSON object with the following fields:
{
  "title": string,
  "company": string,
  "description": string,
  "location": string,
  "datePosted": string (ISO 8601 date) or null,
  "url": string,
  "internalId": string or null,
  "source": string,
  "reposted": boolean or null
}

The title, company, description, location and url fields are required; the others may be null.
Format the description field itself properly, keeping bullet lists, paragraphs and headings. The description is the most important field: do not omit important information and include as much relevant text as possible.
Return ONLY the JSON object, with no markdown formatting, no code fences, no backticks and no explanation.

This is the url of the page: {url}
This is the text of the page: {text}
`

// BuildPostingPrompt fills the extraction prompt with the page URL and text.
func BuildPostingPrompt(url, text string) string {
	return strings.NewReplacer("{url}", url, "{text}", text).Replace(postingPromptTemplate)
}
