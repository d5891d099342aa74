package cmd

import (
	"github.com/akili-ai/akili-cli/pkg/service"
	"github.com/spf13/cobra"
)

var (
	payPlan  string
	payPhone string
)

var payCmd = &cobra.Command{
	Use:   "pay",
	Short: "Upgrade via M-Pesa",
	Long:  `Initiate an M-Pesa STK push to unlock full access on this device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPaymentService(app).Pay(payPlan, payPhone)
	},
}

func init() {
	payCmd.Flags().StringVar(&payPlan, "plan", "premium", "Plan name")
	payCmd.Flags().StringVar(&payPhone, "phone", "", "M-Pesa phone number")
	payCmd.MarkFlagRequired("phone")
}
