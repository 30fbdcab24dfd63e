package service

import "strings"

// Topic maps a keyword to its canned reply
type Topic struct {
	Keyword  string
	Response string
}

const fallbackResponse = "I can help you with:\n• Timetable\n• Upcoming events\n• Exam schedule\n• Attendance\nTry asking about any of these!"

// DefaultTopics returns the assistant topics in match order
func DefaultTopics() []Topic {
	return []Topic{
		{
			Keyword: "timetable",
			Response: "Here's your weekly timetable:\n\n" +
				"<b>Monday:</b> Mathematics (9-10), Physics (11-12)\n" +
				"<b>Tuesday:</b> Chemistry (10-11), Biology Lab (2-4)\n" +
				"<b>Wednesday:</b> Computer Science (9-11), Mathematics (2-3)\n" +
				"<b>Thursday:</b> Physics Lab (10-1), Sports (3-4)\n" +
				"<b>Friday:</b> Project Work (9-12), Seminar (2-4)",
		},
		{
			Keyword: "events",
			Response: "Upcoming Events:\n\n" +
				"• <b>Science Fair:</b> Oct 15, Main Auditorium\n" +
				"• <b>Career Workshop:</b> Oct 18, Room 201\n" +
				"• <b>Sports Day:</b> Oct 22, University Ground\n" +
				"• <b>Library Workshop:</b> Oct 25, Central Library",
		},
		{
			Keyword: "exams",
			Response: "Exam Schedule:\n\n" +
				"• <b>Mathematics:</b> Nov 5, 9:00 AM\n" +
				"• <b>Physics:</b> Nov 7, 9:00 AM\n" +
				"• <b>Chemistry:</b> Nov 9, 2:00 PM\n" +
				"• <b>Computer Science:</b> Nov 12, 9:00 AM",
		},
		{
			Keyword: "attendance",
			Response: "Your Attendance Summary:\n\n" +
				"• <b>Mathematics:</b> 94% (47/50)\n" +
				"• <b>Physics:</b> 96% (48/50)\n" +
				"• <b>Chemistry:</b> 92% (46/50)\n" +
				"• <b>Overall:</b> 95%",
		},
	}
}

// Responder answers chat queries by keyword match
type Responder struct {
	topics   []Topic
	fallback string
}

// NewResponder creates a responder over topics, matched in the given order
func NewResponder(topics []Topic) *Responder {
	return &Responder{
		topics:   topics,
		fallback: fallbackResponse,
	}
}

// Respond returns the reply of the first topic whose keyword occurs in query
func (r *Responder) Respond(query string) string {
	q := strings.ToLower(query)
	for _, topic := range r.topics {
		if strings.Contains(q, topic.Keyword) {
			return topic.Response
		}
	}
	return r.fallback
}

// Keywords returns topic keywords in match order
func (r *Responder) Keywords() []string {
	keywords := make([]string, 0, len(r.topics))
	for _, topic := range r.topics {
		keywords = append(keywords, topic.Keyword)
	}
	return keywords
}
