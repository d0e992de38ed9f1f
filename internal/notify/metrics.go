package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var memberNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_member_notifications_total",
	Help: "Direct messages attempted to sanctioned members, by outcome",
}, []string{"outcome"})

var auditLogPosts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "beryllium_audit_log_posts_total",
	Help: "Audit log posts attempted, by outcome",
}, []string{"outcome"})
