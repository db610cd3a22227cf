package chat

import "strings"

// fallbackResponse produces a keyword-matched reply when no LLM provider is
// reachable. First match wins.
func fallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "resume") || strings.Contains(lower, "cv"):
		return "Before I help with your resume, let me ask: What type of role are you targeting? What's your experience level? This will help me give you specific advice tailored to your situation."
	case strings.Contains(lower, "job") || strings.Contains(lower, "position"):
		return "To help you find the right opportunities, I need to know: What's your target role? What location are you considering? Are you open to remote work? Let me think through the best approach for your job search."
	case strings.Contains(lower, "interview"):
		return "Let me help you prepare effectively. First, what type of interview is it (technical, behavioral, or both)? What role and company? I'll think through a step-by-step preparation plan based on my experience."
	case strings.Contains(lower, "cover letter"):
		return "I can help craft a compelling cover letter. To do this well, I need: What's the job title and company? What are your key qualifications? Let me think about how to best position you for this role."
	default:
		return "I'm here to help with your job search! As someone who understands the job hunting process, I can assist with resumes, interviews, applications, and career advice. What specific challenge are you facing? The more details you share, the better I can help."
	}
}
