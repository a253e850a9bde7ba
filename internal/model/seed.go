package model

func strptr(s string) *string { return &s }

// SeedArticles returns the fixed article list. Articles are never persisted.
func SeedArticles() []Article {
	return []Article{
		{
			ID:       1,
			Title:    "Business Central 2025 Wave 2: AI Agents and Enhanced Copilot Features",
			Source:   "Microsoft Dynamics 365 Blog",
			Category: "Business Central",
			Date:     "2025-08-31T14:30:00Z",
			Excerpt:  "Discover the revolutionary AI agents coming to Business Central, including Sales Order Agent with email processing and Payables Agent for automated invoice matching.",
			FullContent: "Microsoft has announced groundbreaking AI capabilities in Business Central 2025 Wave 2 that will transform how organizations handle business processes. The new Sales Order Agent can now process emails with attachments, automatically extract relevant information, manage multiple ship-to addresses, and handle capable-to-promise scenarios without human intervention.\n\n" +
				"The Payables Agent introduces contextual invoice drafts and automated purchase invoice matching, reducing manual data entry by up to 80%. These agents leverage Azure AI Foundry's enterprise-grade capabilities to provide intelligent automation.\n\n" +
				"Key features include:\n• Advanced email processing with attachment handling\n• Multi-address order management\n• Intelligent invoice matching algorithms\n• Contextual draft generation\n• Seamless integration with existing workflows\n\n" +
				"These enhancements position Business Central as a leader in AI-powered ERP solutions, enabling organizations to achieve higher productivity and accuracy in their financial operations.",
			URL:      "https://www.microsoft.com/dynamics365/blog/business-central-ai-agents",
			Tags:     []string{"AI", "Copilot", "Wave 2", "Agents"},
			ReadTime: "5 min read",
		},
		{
			ID:       2,
			Title:    "Azure AI Foundry August 2025: Fine-tuning Enhancements and Pause/Resume",
			Source:   "Azure AI Foundry Blog",
			Category: "Azure AI",
			Date:     "2025-08-28T16:00:00Z",
			Excerpt:  "New fine-tuning capabilities including Pause & Resume functionality and Cross-Region support now available in Azure AI Foundry.",
			FullContent: "Azure AI Foundry continues to evolve with significant enhancements to its fine-tuning capabilities. The August 2025 update introduces game-changing features that address enterprise needs for cost optimization and global deployment.\n\n" +
				"Pause & Resume Functionality:\nOrganizations can now pause expensive fine-tuning jobs during off-hours and resume them when needed, potentially reducing costs by 40-60% for long-running training processes.\n\n" +
				"Cross-Region Support:\nModels can now be fine-tuned in one region and deployed globally, improving latency and compliance with data residency requirements.\n\n" +
				"Additional features:\n• Enhanced checkpoint management\n• Automated hyperparameter optimization\n• Integration with Azure Cost Management\n• Advanced monitoring and alerting\n• Support for custom evaluation metrics\n\n" +
				"These improvements make Azure AI Foundry more accessible to organizations of all sizes while maintaining enterprise-grade security and compliance standards.",
			URL:      "https://azure.microsoft.com/blog/ai-foundry-fine-tuning-updates",
			Tags:     []string{"Fine-tuning", "GPT", "Azure AI Foundry"},
			ReadTime: "4 min read",
		},
	}
}

// SeedFeeds returns the default feed subscriptions.
func SeedFeeds() []RssFeed {
	return []RssFeed{
		{
			Name:        "Microsoft Dynamics 365 Blog",
			URL:         "https://www.microsoft.com/en-us/dynamics-365/blog/feed/",
			Category:    "Business Central",
			Status:      FeedActive,
			LastUpdated: "2025-09-01T08:30:00Z",
		},
		{
			Name:        "Azure AI Foundry Blog",
			URL:         "https://techcommunity.microsoft.com/category/azure-ai-foundry/feed",
			Category:    "Azure AI",
			Status:      FeedActive,
			LastUpdated: "2025-09-01T07:15:00Z",
		},
	}
}

// SeedConferences returns the default conference list, drawing ids from next.
func SeedConferences(next func() int64) []Conference {
	return []Conference{
		{
			ID:          next(),
			Name:        "Microsoft Ignite 2025",
			StartDate:   "2025-11-17",
			EndDate:     "2025-11-21",
			Location:    "San Francisco, CA",
			Type:        "Premier Conference",
			CFPDeadline: strptr("2025-09-15"),
			Website:     strptr("https://ignite.microsoft.com"),
			Topics:      []string{"AI", "Cloud", "Business Applications"},
			Involvement: InvolvementAttending,
			Notes:       strptr("Planning to attend keynotes and Business Central sessions"),
		},
	}
}

// SeedContentIdeas returns the default content ideas, drawing ids from next.
func SeedContentIdeas(next func() int64) []ContentIdea {
	return []ContentIdea{
		{
			ID:          next(),
			Type:        ContentBlog,
			Title:       "Building Your First AI Agent in Business Central",
			Status:      StatusDraft,
			Priority:    PriorityHigh,
			Notes:       strptr("Cover the new Sales Order Agent features, practical implementation tips"),
			DateCreated: "2025-09-01T10:00:00Z",
		},
		{
			ID:          next(),
			Type:        ContentSpeaking,
			Title:       "Enterprise AI Strategy with Azure AI Foundry",
			Status:      StatusIdea,
			Priority:    PriorityMedium,
			Notes:       strptr("Good for regional conferences, focus on ROI and business value"),
			DateCreated: "2025-08-28T14:30:00Z",
		},
	}
}

// SeedGoals returns the default goals, drawing ids from next.
func SeedGoals(next func() int64) []Goal {
	return []Goal{
		{ID: next(), Title: "Write 24 blog posts this year", Current: 23, Target: 24, Deadline: "2025-12-31", Category: "content"},
		{ID: next(), Title: "Speak at 5 conferences", Current: 3, Target: 5, Deadline: "2025-12-31", Category: "speaking"},
		{ID: next(), Title: "Reach 100 forum contributions", Current: 87, Target: 100, Deadline: "2025-10-31", Category: "community"},
	}
}

// DefaultProfileLocation is the placeholder location of the default profile.
const DefaultProfileLocation = "Your City, Country"

// DefaultProfile is used when no profile has been saved.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:        "MVP Candidate",
		LinkedIn:    "https://linkedin.com/in/mvp-candidate",
		Blog:        "https://mvpcandidate.blog",
		GitHub:      "https://github.com/mvpcandidate",
		Twitter:     "https://twitter.com/mvpcandidate",
		Location:    DefaultProfileLocation,
		Specialties: []string{"Business Central", "Azure AI", "Development"},
	}
}

// DefaultSettings enables every notification.
func DefaultSettings() Settings {
	return Settings{NewsNotifications: true, ConferenceNotifications: true, MVPNotifications: true}
}

// DefaultStats are the initial dashboard counters.
func DefaultStats() Stats {
	return Stats{BlogPosts: 23, ForumAnswers: 87, Conferences: 3, Contributions: 156}
}
