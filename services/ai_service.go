package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"consulting-platform-server/config"
	"consulting-platform-server/database"
	"consulting-platform-server/models"

	"gorm.io/gorm"
)

// GeminiRequest represents the request payload for the Gemini API
type GeminiRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GeminiResponse represents the response from the Gemini API
type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// AIService drafts reply suggestions for consultants using Gemini
type AIService struct {
	apiKey string
	client *http.Client
	db     *gorm.DB
}

func NewAIService() *AIService {
	return &AIService{
		apiKey: config.AppConfig.Platform.GeminiAPIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		db: database.DB,
	}
}

// SuggestReply drafts a reply for the consultant on a booking thread.
// Only the consultant side of the conversation may request suggestions;
// the returned text is a draft, never sent automatically.
func (ai *AIService) SuggestReply(bookingID, consultantUserID uint, language string) (string, error) {
	if ai.apiKey == "" {
		return "", fmt.Errorf("ai assistance is not configured")
	}

	var booking models.Booking
	if err := ai.db.Preload("ConsultationType").Preload("Consultant").First(&booking, bookingID).Error; err != nil {
		return "", ErrNotFound
	}
	if booking.Consultant.UserID != consultantUserID {
		return "", ErrUnauthorized
	}

	var messages []models.Message
	if err := ai.db.Where("booking_id = ?", bookingID).
		Order("created_at DESC, id DESC").
		Limit(20).
		Find(&messages).Error; err != nil {
		return "", err
	}
	// Oldest first for the prompt.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	prompt := ai.buildReplyPrompt(&booking, messages, language)

	return ai.callGeminiAPI(prompt)
}

func (ai *AIService) buildReplyPrompt(booking *models.Booking, messages []models.Message, language string) string {
	if language == "" {
		language = "ar"
	}

	prompt := fmt.Sprintf(`You are drafting a reply on behalf of a professional HR and labor-law consultant on a Saudi consulting platform.

RULES:
1. Only address the client's consultation topic; never give advice outside it.
2. Keep the draft under 120 words, professional and courteous.
3. Do not promise legal outcomes or cite regulations you are not given.
4. Respond in language: %s

Consultation: %s (%s)
Client notes: %s

Conversation so far:
`, language, booking.ConsultationType.NameEn, booking.ConsultationType.NameAr, booking.ClientNotes)

	for _, msg := range messages {
		role := "client"
		if msg.SenderRole == models.SenderRoleConsultant {
			role = "consultant"
		}
		prompt += fmt.Sprintf("- %s: %s\n", role, msg.Body)
	}

	prompt += "\nDraft the consultant's next reply:"
	return prompt
}

func (ai *AIService) callGeminiAPI(prompt string) (string, error) {
	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent?key=%s", ai.apiKey)

	request := GeminiRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: GenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 512,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	resp, err := ai.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error: %s", string(body))
	}

	var geminiResp GeminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}
