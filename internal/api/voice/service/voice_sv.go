package voiceService

import (
	"VirtualMirror/internal/api/voice"
	contextPkg "VirtualMirror/pkg/context"
	"VirtualMirror/pkg/nlp"
	"context"
	"encoding/base64"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const suggestionLimit = 3

func (s *voiceService) ProcessUtterance(ctx context.Context, text string) (*voice.VoiceCommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, voice.ErrEmptyTranscription
	}

	cmd, matched := s.registry.Dispatch(text)

	resp := &voice.VoiceCommandResponse{
		Matched:    matched,
		Transcript: text,
	}

	if matched {
		s.mu.RLock()
		meta, ok := s.meta[cmd.ID]
		s.mu.RUnlock()

		resp.CommandID = cmd.ID
		if ok {
			resp.ActionType = meta.ActionType
			resp.Target = meta.Target
		}

		if s.chatGPT != nil {
			reply, err := s.chatGPT.GenerateCommandReply(ctx, text, cmd.Description)
			if err != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to generate spoken confirmation")
			} else {
				resp.Reply = reply
				s.attachSpeech(resp)
			}
		}
	} else {
		resp.Suggestions = s.suggestFor(text)
	}

	s.recordInvocation(ctx, resp)

	return resp, nil
}

func (s *voiceService) ProcessAudioCommand(ctx context.Context, file *multipart.FileHeader) (*voice.VoiceCommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateAudioFile(file); err != nil {
		return nil, voice.ErrInvalidAudioFile
	}

	transcript, err := s.transcription.TranscribeSpokenCommand(ctx, file)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Transcription failed")
		return nil, voice.ErrTranscriptionFailed
	}

	if strings.TrimSpace(transcript) == "" {
		return nil, voice.ErrEmptyTranscription
	}

	return s.ProcessUtterance(ctx, transcript)
}

func (s *voiceService) TestNLP(ctx context.Context, req voice.NLPTestRequest) (*voice.NLPTestResponse, error) {
	cleaned := s.nlpProcessor.CleanText(req.Text)
	tokens := s.nlpProcessor.ExtractTokens(cleaned)

	return &voice.NLPTestResponse{
		Input:       req.Text,
		CleanedText: cleaned,
		Tokens:      tokens,
		Suggestions: s.suggestFor(req.Text),
	}, nil
}

func (s *voiceService) GetHistory(ctx context.Context, limit int) ([]voice.InvocationHistory, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Invocations.GetRecentInvocations(ctx, limit)
}

func (s *voiceService) suggestFor(text string) []voice.SuggestionItem {
	s.mu.RLock()
	candidates := make([]nlp.Candidate, 0, len(s.meta))
	for _, cmd := range s.meta {
		candidates = append(candidates, nlp.Candidate{
			ID:          cmd.ID,
			Phrases:     cmd.Patterns,
			Description: cmd.Description,
		})
	}
	s.mu.RUnlock()

	suggestions := s.nlpProcessor.Suggest(text, candidates, suggestionLimit)

	items := make([]voice.SuggestionItem, 0, len(suggestions))
	for _, sg := range suggestions {
		items = append(items, voice.SuggestionItem{
			CommandID:   sg.CommandID,
			Phrase:      sg.Phrase,
			Description: sg.Description,
			Score:       sg.Score,
		})
	}

	return items
}

func (s *voiceService) attachSpeech(resp *voice.VoiceCommandResponse) {
	if s.tts == nil || resp.Reply == "" {
		return
	}

	audioBytes, err := s.tts.GenerateAudio(resp.Reply)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to synthesize confirmation audio")
		return
	}

	resp.AudioBase64 = base64.StdEncoding.EncodeToString(audioBytes)
}

// recordInvocation is best-effort: a full history table is useful for tuning
// the vocabulary but never blocks the command itself.
func (s *voiceService) recordInvocation(ctx context.Context, resp *voice.VoiceCommandResponse) {
	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		return
	}

	inv := voice.InvocationHistory{
		ID:         id,
		Utterance:  resp.Transcript,
		CommandID:  resp.CommandID,
		ActionType: resp.ActionType,
		Target:     resp.Target,
		Matched:    resp.Matched,
		CreatedAt:  time.Now(),
	}

	if err := repo.Invocations.CreateInvocation(ctx, inv); err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Failed to record voice invocation")
	}
}
