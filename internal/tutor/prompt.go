package tutor

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You are a tutor helping French primary school children revise topics they struggled with.

Rules:
- Write a single short question testing the given topic. One or two sentences, plain text, no markdown.
- The question must be answerable in a sentence or two, from memory, without pen and paper.
- Match the child's grade level: vocabulary, numbers and expectations must fit the age.
- The expected answer must be short, concrete, and phrased the way a child of that age would say it.
- Stay strictly inside the given topic and category. Do not broaden to the whole subject.`

const evaluationSystemPrompt = `You grade a child's answer to a revision question on the SuperMemo 0-5 recall quality scale.

Scale:
- 0: no recall, blank or unrelated answer.
- 1: wrong, but touches the topic.
- 2: wrong, yet close enough that the correct answer would feel familiar.
- 3: correct in substance, with effort, gaps or imprecision.
- 4: correct with minor hesitation or wording issues.
- 5: complete, confident, precise.

Rules:
- Grade substance, not spelling or grammar, unless the question is about spelling.
- A paraphrase of the expected answer is correct.
- is_correct is true exactly when quality is 3 or more.
- Feedback is for the child: one or two warm sentences, name what was right first, then what to fix. Match the grade level.`

// gradeLabels expands the stored grade codes for the prompt.
var gradeLabels = map[string]string{
	"cp":  "CP (age 6-7)",
	"ce1": "CE1 (age 7-8)",
	"ce2": "CE2 (age 8-9)",
	"cm1": "CM1 (age 9-10)",
	"cm2": "CM2 (age 10-11)",
}

func gradeLabel(code string) string {
	if l, ok := gradeLabels[strings.ToLower(code)]; ok {
		return l
	}
	return code
}

func buildQuestionMessage(in QuestionInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	if in.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", in.Category)
	}
	fmt.Fprintf(&b, "Grade: %s\n", gradeLabel(in.GradeLevel))
	return b.String()
}

func buildEvaluationMessage(in EvaluationInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	fmt.Fprintf(&b, "Grade: %s\n", gradeLabel(in.GradeLevel))
	fmt.Fprintf(&b, "\nQuestion:\n%s\n", in.Question)
	fmt.Fprintf(&b, "\nExpected answer:\n%s\n", in.ExpectedAnswer)
	fmt.Fprintf(&b, "\nChild's answer:\n%s\n", in.ChildAnswer)
	return b.String()
}
