package service

import "math"

type ScoreService interface {
	// Percentage is correct/total*100 rounded to two decimals, 0 when total is 0.
	Percentage(correct, total int) float64
}

type scoreServiceImpl struct{}

func NewScoreService() ScoreService {
	return &scoreServiceImpl{}
}

func (s *scoreServiceImpl) Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*100) / 100
}
