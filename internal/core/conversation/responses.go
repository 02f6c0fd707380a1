package conversation

import (
	"strings"
)

const greetingReply = `Hello, and welcome!

I'm your document assistant. Upload a policy, contract, report or manual and I'll help you find what you need in it: rates, rules, procedures, deadlines and the fine print in between.

Ask me anything about your documents and I'll answer with the details and where they come from.`

const vagueReply = `Happy to help! I work best with a concrete question about your documents.

Some examples of what I can answer:
- "What's the hotel allowance for L3 employees in Mumbai?"
- "Can I upgrade my flight if I pay the difference?"
- "How far in advance should I book international travel?"
- "What does the per diem cover for meals in London?"

The more specific the question, the more precise the answer. What would you like to know?`

const offTopicReply = `Thanks for asking! That one is outside what I can help with, though. I'm a document assistant and I answer questions from the files you have uploaded.

Things I'm good at:
- allowances, rates and entitlements
- booking procedures and approvals
- accommodation and travel guidelines
- exceptions and who can grant them

What would you like to know about your documents?`

func programmingReply(filenames []string) string {
	var b strings.Builder
	b.WriteString("Thanks for thinking of me! Programming is not my area, though. ")
	b.WriteString("I'm a document assistant and I answer questions from the files you have uploaded.\n\n")
	if len(filenames) > 0 {
		b.WriteString("Right now I can help you with: ")
		b.WriteString(strings.Join(filenames, ", "))
		b.WriteString(".\n\n")
	}
	b.WriteString("Ask me about allowances, approvals, booking rules or anything else those documents cover.")
	return b.String()
}
