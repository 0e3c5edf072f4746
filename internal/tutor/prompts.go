package tutor

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a patient tutor for high school students. Be accurate and concise."

func notesPrompt(topic string) string {
	return fmt.Sprintf(`Generate clear, concise, and easy-to-understand notes for a high school student
on the topic of '%s'.

Use markdown formatting. For example:
- Use headings (##) for sub-topics.
- Use bullet points (*) for lists.
- Use bold (**) for key terms.

Start directly with the content. Do not include a title like "Notes on %s".`, topic, topic)
}

func questionsPrompt(topic string) string {
	return fmt.Sprintf(`Generate 5 multiple-choice quiz questions for a high school student on the topic of '%s'.
For each question, provide 4 options (A, B, C, D) and specify the correct answer key (e.g., "B").
Also, identify the specific sub-concept being tested (e.g., 'retardation', 'Ohm's Law').

Return the output ONLY as a valid JSON list.

Example format:
[
  {
    "question": "What is retardation?",
    "options": {
      "A": "Positive acceleration",
      "B": "Negative acceleration",
      "C": "Constant velocity",
      "D": "Zero velocity"
    },
    "answer": "B",
    "concept": "retardation"
  }
]`, topic)
}

func analysisPrompt(topic, questionsJSON, answersJSON string) string {
	return fmt.Sprintf(`Here is a test a student took on '%s'.
Questions: %s
Student's Answers: %s

Please identify the specific concepts the student misunderstood.
For each misunderstood concept, provide:
1. 'concept_name': The name of the concept (e.g., "retardation").
2. 'explanation': A clear, elegant explanation of the concept with a simple example.
3. 'practice_questions': An array of 5 new practice questions on this concept, each with
   "question", "options" (keys A to D), "answer" and "concept".

Return ONLY a valid JSON list, with one object for each misunderstood concept.`, topic, questionsJSON, answersJSON)
}

func assessmentPrompt(topic string, weakConcepts []string) string {
	return fmt.Sprintf(`A student is struggling with the following concepts related to '%s': %s.

Please generate a new "dynamic assessment test" for them. The test must contain:
- 3 EASY questions
- 5 MEDIUM questions
- 2 HARD questions

Focus the questions on the student's weak concepts.
Return ONLY a valid JSON list of 10 question objects.

Example format:
[
  {
    "question": "An easy question about a weak concept...",
    "options": {"A": "...", "B": "...", "C": "...", "D": "..."},
    "answer": "A",
    "concept": "...",
    "difficulty": "Easy"
  }
]`, topic, strings.Join(weakConcepts, ", "))
}
