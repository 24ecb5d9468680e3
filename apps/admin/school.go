package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trezcool/clno/core"
	"github.com/trezcool/clno/core/school"
)

func (cli *commandLine) addSchoolCmd() *cobra.Command {
	var ns school.NewSchool
	cmd := &cobra.Command{
		Use:   "add-school",
		Short: "Add a school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ns.Validate(core.NewValidator(core.NewTranslator())); err != nil {
				return err
			}
			svc, err := cli.schoolService(cmd.Context())
			if err != nil {
				return err
			}
			sch, err := svc.Create(cmd.Context(), ns)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "school %s (%s) added\n", sch.ID, sch.Name)
			return nil
		},
	}
	cmd.Flags().StringVar((*string)(&ns.ID), "id", "", "school id")
	cmd.Flags().StringVar(&ns.Name, "name", "", "school name")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (cli *commandLine) setTeacherPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-teacher-password",
		Short: "Set the teacher password; it is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			svc, err := cli.schoolService(cmd.Context())
			if err != nil {
				return err
			}
			if err = svc.SetTeacherPassword(cmd.Context(), pwd); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "teacher password set")
			return nil
		},
	}
}

func (cli *commandLine) setClassPasswordCmd() *cobra.Command {
	var schoolID, grade, classNum string
	cmd := &cobra.Command{
		Use:   "set-class-password",
		Short: "Set the password of a class; it is prompted next",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pwd, err := cli.promptPassword(cmd)
			if err != nil {
				return err
			}
			svc, err := cli.schoolService(cmd.Context())
			if err != nil {
				return err
			}
			ref := school.ClassRef{
				SchoolID: core.FlexString(schoolID).Clean(),
				Grade:    core.FlexString(grade).Clean(),
				ClassNum: core.FlexString(classNum).Clean(),
			}
			if err = svc.SetClassPassword(cmd.Context(), ref, pwd); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "password of class %s set\n", ref)
			return nil
		},
	}
	cmd.Flags().StringVar(&schoolID, "school", "", "school id")
	cmd.Flags().StringVar(&grade, "grade", "", "grade")
	cmd.Flags().StringVar(&classNum, "class", "", "class number")
	_ = cmd.MarkFlagRequired("school")
	_ = cmd.MarkFlagRequired("grade")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}
