package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/vocabtest/internal/auth"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development teacher token signed with AUTH_JWT_SECRET",
		RunE:  runToken,
	}
	f := cmd.Flags()
	f.Uint("teacher-id", 0, "Teacher ID placed in the sub claim (required)")
	f.String("name", "", "Teacher display name")
	f.Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("teacher-id")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f := cmd.Flags()
	teacherID, _ := f.GetUint("teacher-id")
	name, _ := f.GetString("name")
	ttl, _ := f.GetDuration("ttl")
	if teacherID == 0 {
		return errors.New("--teacher-id must be positive")
	}
	if ttl <= 0 {
		return errors.New("--ttl must be positive")
	}

	token, err := auth.NewAuthenticator(cfg).IssueToken(teacherID, name, ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
