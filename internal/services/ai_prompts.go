package services

// Fixed replies used when no provider credential is configured
const (
	chatFallback = "AI assistant is currently in offline mode. Configure an OpenAI API key " +
		"to enable live responses. In the meantime, follow your agency's standard operating " +
		"procedures and escalate critical incidents to the duty officer."
	analyzeFallback = "AI analysis is unavailable because no API key is configured. " +
		"Review the report manually for location, severity and affected population."
	recommendFallback = "AI recommendations are unavailable because no API key is configured. " +
		"Recommended baseline: verify the report, notify the relevant response agency, " +
		"and monitor the situation for escalation."
	trendsFallbackInsight = "AI trend analysis is unavailable because no API key is configured."
	trendsFallbackAdvice  = "Continue manual monitoring of social media trends."

	unavailableMessage = "The AI service is temporarily unavailable. Please try again later."
)

const (
	chatSystemPrompt = "You are an assistant for an early warning and early response system " +
		"used by emergency management agencies. Answer concisely and prioritise the safety " +
		"of affected communities."
	analyzeSystemPrompt = "You analyze incident reports and situation updates for an early " +
		"warning system. Identify the incident type, severity, risks, and any information gaps."
	recommendSystemPrompt = "You are an emergency response planner. Given an incident as JSON, " +
		"produce a numbered list of concrete response actions with the agencies involved."
	trendsSystemPrompt = "You analyze social media trend data for early signs of crises. " +
		"Respond with a JSON object with keys: insights (array of strings), recommendations " +
		"(array of strings), riskLevel (one of critical, high, medium, low) and confidence " +
		"(number from 0 to 100)."
)
